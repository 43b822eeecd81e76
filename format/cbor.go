package format

import "github.com/fxamacker/cbor/v2"

// CBOR decodes values with fxamacker/cbor. The zero value is NOT ready to
// use. Construct with NewCBOR or MustCBOR.
type CBOR[T any] struct {
	dec cbor.DecMode
}

var _ Decoder[struct{}] = CBOR[struct{}]{}

// NewCBOR constructs a CBOR backend with default decode options.
func NewCBOR[T any]() (CBOR[T], error) {
	dm, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		return CBOR[T]{}, err
	}
	return CBOR[T]{dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error. Handy for package-level
// variables in tests/examples.
func MustCBOR[T any]() CBOR[T] {
	c, err := NewCBOR[T]()
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[T]) Decode(b []byte) (T, error) {
	var v T
	err := c.dec.Unmarshal(b, &v)
	return v, err
}
