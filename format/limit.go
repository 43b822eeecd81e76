package format

import "fmt"

// Limit wraps another backend to enforce a maximum input size at Decode time.
// If Max <= 0, size limiting is disabled.
//
// Typical use: protect against a runaway data file taking the process down
// while someone edits assets live.
type Limit[T any] struct {
	// Inner is the underlying backend being wrapped. It must be set.
	Inner Decoder[T]

	// Max is the maximum permitted length in bytes of the incoming payload.
	Max int
}

func (l Limit[T]) Decode(b []byte) (T, error) {
	if l.Max > 0 && len(b) > l.Max {
		var zero T
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), l.Max)
	}
	return l.Inner.Decode(b)
}
