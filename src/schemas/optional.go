package schemas

import "encoding/json"

// Field wraps a snapshot value so the reconciler can tell the difference
// between a key that was absent from the payload (leave the mirror
// unchanged) and a key sent as JSON null (clear the mirror). Coalescing
// absent keys to null would erase fields on terse incremental events.
type Field[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// UnmarshalJSON records presence; encoding/json only calls it for keys that
// exist in the payload, including explicit nulls.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if string(data) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// Set reports whether the key was sent with a non-null value.
func (f Field[T]) Set() bool {
	return f.Present && !f.Null
}

// Cleared reports whether the key was sent as an explicit null.
func (f Field[T]) Cleared() bool {
	return f.Present && f.Null
}
