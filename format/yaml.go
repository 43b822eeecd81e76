package format

import "gopkg.in/yaml.v3"

// YAML decodes values with gopkg.in/yaml.v3. The zero value is ready to use.
type YAML[T any] struct{}

func (YAML[T]) Decode(b []byte) (T, error) {
	var v T
	err := yaml.Unmarshal(b, &v)
	return v, err
}
