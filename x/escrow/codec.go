package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
)

// Header is the part of the box state common to all variants.
type Header struct {
	Key       Key              `protobuf:"bytes,1,opt,name=key,proto3" json:"key"`
	Trader    lockbox.Address  `protobuf:"bytes,2,opt,name=trader,proto3" json:"trader"`
	Principal *coin.Coin       `protobuf:"bytes,3,opt,name=principal,proto3" json:"principal"`
	State     State            `protobuf:"varint,4,opt,name=state,proto3" json:"state"`
	CreatedAt lockbox.UnixTime `protobuf:"varint,5,opt,name=created_at,json=createdAt,proto3" json:"created_at"`
}

func (m *Header) Reset()         { *m = Header{} }
func (m *Header) String() string { return proto.CompactTextString(m) }
func (*Header) ProtoMessage()    {}

// Pointer maps a box key to the arena slot holding the box.
type Pointer struct {
	Index int64 `protobuf:"varint,1,opt,name=index,proto3" json:"index,omitempty"`
}

func (m *Pointer) Reset()         { *m = Pointer{} }
func (m *Pointer) String() string { return proto.CompactTextString(m) }
func (*Pointer) ProtoMessage()    {}
