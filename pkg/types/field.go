package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldType tags the editor widget a field is rendered with. The set is closed;
// a new tag needs a matching renderer.
type FieldType string

// Field types understood by the rendering surface.
const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldArray    FieldType = "array"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldURL      FieldType = "url"
	FieldDate     FieldType = "date"
	FieldDateTime FieldType = "datetime"
	FieldTime     FieldType = "time"
	FieldSelect   FieldType = "select"
	FieldNumber   FieldType = "number"
)

// FieldTypes lists every valid field type in rendering order.
var FieldTypes = []FieldType{
	FieldText, FieldTextarea, FieldArray, FieldEmail, FieldTel, FieldURL,
	FieldDate, FieldDateTime, FieldTime, FieldSelect, FieldNumber,
}

// ValidFieldType reports whether ft is one of the FieldTypes.
func ValidFieldType(ft FieldType) bool {
	for _, t := range FieldTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// Field validation errors.
var (
	ErrInvalidFieldType = errors.New("invalid field type")
	ErrMissingOptions   = errors.New("select field requires options")
	ErrInvalidField     = errors.New("invalid field descriptor")
)

// FieldDescriptor pairs an editable value with its rendering metadata.
// Value is a scalar (string, json.Number, float64, bool) or a sequence of
// scalars.
type FieldDescriptor struct {
	Value       any       `json:"value" yaml:"value"`
	FieldType   FieldType `json:"field_type" yaml:"field_type" validate:"required,fieldtype"`
	Editable    bool      `json:"editable" yaml:"editable"`
	Description string    `json:"description" yaml:"description"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty" validate:"required_if=FieldType select"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("fieldtype", func(fl validator.FieldLevel) bool {
		return ValidFieldType(FieldType(fl.Field().String()))
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return ValidStatus(Status(fl.Field().String()))
	})
	return v
}

// Validate checks the field type against the closed enum and that select
// fields carry options. Returns ErrInvalidFieldType or ErrMissingOptions.
func (d FieldDescriptor) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "fieldtype":
			return fmt.Errorf("%w: %q", ErrInvalidFieldType, d.FieldType)
		case "required_if":
			return ErrMissingOptions
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidField, describeValidation(verrs))
}

func describeValidation(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// FieldSet maps field names to descriptors. Repeated nested structures use
// <role>_<index> names so keys never collide.
type FieldSet map[string]FieldDescriptor

// Clone returns a shallow copy of the set. Descriptor values are shared.
func (fs FieldSet) Clone() FieldSet {
	if fs == nil {
		return nil
	}
	out := make(FieldSet, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// Values unwraps every descriptor into an EditBuffer holding the current
// values, the shape an edit session starts from.
func (fs FieldSet) Values() EditBuffer {
	buf := make(EditBuffer, len(fs))
	for k, v := range fs {
		buf[k] = v.Value
	}
	return buf
}

// Validate validates every descriptor in the set.
func (fs FieldSet) Validate() error {
	for name, d := range fs {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

// EditBuffer holds pending raw values keyed by field name, without the
// descriptor wrapper.
type EditBuffer map[string]any
