package schema

import (
	"strings"
	"unicode"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

// Normalize turns raw into a well-formed descriptor with Editable forced to
// true. A field type outside the closed set, or a select without options,
// is replaced by the type inferred from the value, so the result always
// passes FieldDescriptor.Validate. raw may already be a descriptor (value or pointer), a decoded JSON
// object in descriptor shape, or a bare value. Normalize is idempotent.
func Normalize(name string, raw any) types.FieldDescriptor {
	switch v := raw.(type) {
	case types.FieldDescriptor:
		return fillDescriptor(name, v)
	case *types.FieldDescriptor:
		if v != nil {
			return fillDescriptor(name, *v)
		}
		return wrapBare(name, nil)
	case map[string]any:
		if d, ok := descriptorFromObject(v); ok {
			return fillDescriptor(name, d)
		}
	}
	return wrapBare(name, raw)
}

// NormalizeSet normalizes every entry of fs into a new set.
func NormalizeSet(fs types.FieldSet) types.FieldSet {
	out := make(types.FieldSet, len(fs))
	for name, d := range fs {
		out[name] = Normalize(name, d)
	}
	return out
}

func fillDescriptor(name string, d types.FieldDescriptor) types.FieldDescriptor {
	d.Editable = true
	if !types.ValidFieldType(d.FieldType) || (d.FieldType == types.FieldSelect && len(d.Options) == 0) {
		d.FieldType = inferFieldType(d.Value)
	}
	if d.Description == "" {
		d.Description = Humanize(name)
	}
	return d
}

func wrapBare(name string, value any) types.FieldDescriptor {
	return types.FieldDescriptor{
		Value:       value,
		FieldType:   inferFieldType(value),
		Editable:    true,
		Description: Humanize(name),
	}
}

// descriptorFromObject reads a stored descriptor that was decoded as a plain
// JSON object. Objects without a "value" key are not descriptors.
func descriptorFromObject(obj map[string]any) (types.FieldDescriptor, bool) {
	value, ok := obj["value"]
	if !ok {
		return types.FieldDescriptor{}, false
	}
	d := types.FieldDescriptor{Value: value}
	if ft, ok := obj["field_type"].(string); ok {
		d.FieldType = types.FieldType(ft)
	}
	if desc, ok := obj["description"].(string); ok {
		d.Description = desc
	}
	if opts, ok := jsonld.Array(obj["options"]); ok {
		for _, o := range opts {
			if s, ok := o.(string); ok {
				d.Options = append(d.Options, s)
			}
		}
	}
	return d, true
}

// inferFieldType tags ISO-8601 timestamps (a string containing both T and Z)
// as datetime and everything else as text.
func inferFieldType(v any) types.FieldType {
	if s, ok := v.(string); ok && strings.Contains(s, "T") && strings.Contains(s, "Z") {
		return types.FieldDateTime
	}
	return types.FieldText
}

// Humanize inserts a space before every uppercase letter of a field name and
// capitalizes the first character: "publisherUrl" becomes "Publisher Url".
func Humanize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := []rune(b.String())
	if len(out) > 0 {
		out[0] = unicode.ToUpper(out[0])
	}
	return string(out)
}
