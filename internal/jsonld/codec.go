package jsonld

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Decode parses a JSON document. Numbers are kept as json.Number.
func Decode(data []byte) (any, error) {
	return DecodeReader(bytes.NewReader(data))
}

// DecodeReader parses a single JSON document from r. Numbers are kept as
// json.Number.
func DecodeReader(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding JSON-LD: %w", err)
	}
	return v, nil
}

// Encode serializes v compactly.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// EncodeIndent serializes v with two-space indentation.
func EncodeIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// DecodeInto parses data into v. Untyped numbers inside v are kept as
// json.Number.
func DecodeInto(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding JSON: %w", err)
	}
	return nil
}
