// Package format holds the backends that parse raw asset bytes into typed
// values. The cache core never inspects bytes itself; every registered asset
// type names one Decoder and delegates to it.
package format

// Decoder parses raw bytes into a value of type T.
type Decoder[T any] interface {
	Decode([]byte) (T, error)
}

// DecoderFunc adapts a plain function to a Decoder.
type DecoderFunc[T any] func([]byte) (T, error)

func (f DecoderFunc[T]) Decode(b []byte) (T, error) { return f(b) }
