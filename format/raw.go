package format

// Bytes is an identity backend for []byte assets. The returned slice is the
// raw file content; callers must not mutate it.
type Bytes struct{}

func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String is a trivial backend for string assets. By convention this assumes
// UTF-8 and performs no validation.
type String struct{}

func (String) Decode(b []byte) (string, error) { return string(b), nil }
