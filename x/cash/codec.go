package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox/coin"
)

// Wallet holds all coins owned by a single account.
type Wallet struct {
	Coins coin.Coins `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Allowance is the amount that a spender may still pull from the owner's
// wallet. It is stored under the owner and spender address pair.
type Allowance struct {
	Coins coin.Coins `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (m *Allowance) Reset()         { *m = Allowance{} }
func (m *Allowance) String() string { return proto.CompactTextString(m) }
func (*Allowance) ProtoMessage()    {}
