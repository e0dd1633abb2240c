package ledger

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox/coin"
)

// Entry is the liquidity owned by a single account, one coin per asset.
type Entry struct {
	Balance coin.Coins `protobuf:"bytes,1,rep,name=balance,proto3" json:"balance,omitempty"`
}

func (m *Entry) Reset()         { *m = Entry{} }
func (m *Entry) String() string { return proto.CompactTextString(m) }
func (*Entry) ProtoMessage()    {}
