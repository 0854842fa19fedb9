package jsonld

// Path addresses a value inside nested JSON objects by property name.
type Path []string

// Lookup walks path from v. The result is reported absent when any step is
// missing, null, or not an object.
func Lookup(v any, path Path) (any, bool) {
	cur := v
	for _, key := range path {
		obj, ok := Object(cur)
		if !ok {
			return nil, false
		}
		next, ok := obj[key]
		if !ok || next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

// LookupScalar walks path and returns the leaf only when it is a present
// scalar.
func LookupScalar(v any, path Path) (any, bool) {
	leaf, ok := Lookup(v, path)
	if !ok || !Present(leaf) {
		return nil, false
	}
	return leaf, true
}

// Set writes value at path inside v, creating missing intermediate objects.
// It returns false without writing when v is not an object or when an
// intermediate step holds a non-object value.
func Set(v any, path Path, value any) bool {
	if len(path) == 0 {
		return false
	}
	obj, ok := Object(v)
	if !ok {
		return false
	}
	for _, key := range path[:len(path)-1] {
		next, exists := obj[key]
		if !exists || next == nil {
			child := map[string]any{}
			obj[key] = child
			obj = child
			continue
		}
		child, ok := Object(next)
		if !ok {
			return false
		}
		obj = child
	}
	obj[path[len(path)-1]] = value
	return true
}
