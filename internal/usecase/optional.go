package usecase

import "encoding/json"

// Optional distinguishes the three states a PATCH field can be in:
// absent from the payload, present as null, or present with a value.
// Absent fields keep their stored value; null clears the column;
// a value replaces it.
type Optional[T any] struct {
	// Defined is true when the key appeared in the payload at all.
	Defined bool
	// Value is nil when the payload carried an explicit null.
	Value *T
}

// UnmarshalJSON is only called by encoding/json when the key is present,
// which is what makes the absent/null distinction observable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Defined = true

	if string(data) == "null" {
		o.Value = nil

		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value

	return nil
}

// MarshalJSON round-trips the wrapped value. Undefined optionals encode as
// null; callers relying on key omission must use omitempty on a pointer
// instead.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Defined || o.Value == nil {
		return []byte("null"), nil
	}

	return json.Marshal(o.Value)
}

// Set returns a defined Optional holding the given value.
func Set[T any](value T) Optional[T] {
	return Optional[T]{Defined: true, Value: &value}
}

// Null returns a defined Optional holding an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Defined: true}
}
