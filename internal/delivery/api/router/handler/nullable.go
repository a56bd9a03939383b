package handler

import (
	"bytes"
	"encoding/json"

	"pawparadise/internal/usecase"
)

// NullableField tells an absent PATCH field apart from an explicit null.
type NullableField[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON only runs for keys present in the body.
func (f *NullableField[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true

		return nil
	}

	return json.Unmarshal(data, &f.Value)
}

// Optional converts the field to the usecase representation, nil Value meaning "clear".
func (f NullableField[T]) Optional() usecase.Optional[T] {
	if !f.Set {
		return usecase.Optional[T]{}
	}
	if f.Null {
		return usecase.Optional[T]{Set: true}
	}
	value := f.Value

	return usecase.Optional[T]{Set: true, Value: &value}
}
