package format

import "google.golang.org/protobuf/proto"

// Protobuf decodes protobuf messages. It needs a constructor for the concrete
// message (e.g. func() *mypb.Sprite { return &mypb.Sprite{} }).
type Protobuf[M proto.Message] struct {
	new func() M
}

func NewProtobuf[M proto.Message](ctor func() M) Protobuf[M] {
	return Protobuf[M]{new: ctor}
}

func (p Protobuf[M]) Decode(b []byte) (M, error) {
	m := p.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
