package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Embedded is a nested collection the clinic API delivers either as a JSON
// array or as a string holding an encoded JSON array. Decoding never fails the
// enclosing document: a collection that cannot be decoded is marked Invalid
// and keeps the cause in Err.
type Embedded[T any] struct {
	Items   []T
	Invalid bool
	Err     error
}

func EmbeddedOf[T any](items ...T) Embedded[T] {
	return Embedded[T]{Items: items}
}

func (e *Embedded[T]) UnmarshalJSON(data []byte) error {
	*e = Embedded[T]{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			e.Invalid, e.Err = true, err
			return nil
		}
		data = bytes.TrimSpace([]byte(encoded))
		if len(data) == 0 {
			return nil
		}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		e.Invalid, e.Err = true, fmt.Errorf("decode nested collection: %w", err)
		return nil
	}
	e.Items = items
	return nil
}

func (e Embedded[T]) MarshalJSON() ([]byte, error) {
	if e.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e.Items)
}
