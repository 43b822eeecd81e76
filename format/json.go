package format

import "encoding/json"

// JSON decodes values with encoding/json. The zero value is ready to use.
type JSON[T any] struct{}

func (JSON[T]) Decode(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}
