// Package jsonld reads and patches parsed JSON-LD values.
//
// Documents are the generic shape produced by JSON decoding: map[string]any
// objects, []any arrays and scalar leaves. Numbers decode to json.Number so
// they round-trip unchanged. Every read is defensive: a missing key, a nil,
// or a primitive where an object is expected all yield "absent" rather than
// an error.
package jsonld
