// Package patch holds the field wrappers used by partial updates.
package patch

import "encoding/json"

// Nullable describes an update to an optional field. A zero Nullable leaves the field
// untouched; a set Nullable with a nil Value clears it.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Null clears the target field.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Value overwrites the target field with v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// From overwrites the target with *v, or clears it when v is nil.
func From[T any](v *T) Nullable[T] {
	if v == nil {
		return Null[T]()
	}
	return Value(*v)
}

// Apply writes the update into dst when the field was set.
func (n Nullable[T]) Apply(dst **T) {
	if !n.Set {
		return
	}
	if n.Value == nil {
		*dst = nil
		return
	}
	v := *n.Value
	*dst = &v
}

// UnmarshalJSON marks the field as set; a JSON null clears it.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// MarshalJSON renders the value or null.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Set assigns *v to dst when v is non-nil.
func Set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
