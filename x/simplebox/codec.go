package simplebox

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/x/escrow"
)

// LockBox is a simple lock box of either direction.
type LockBox struct {
	Header *escrow.Header `protobuf:"bytes,1,opt,name=header,proto3" json:"header"`
	// WithdrawAmount is the native value paid out on close. It is zero for
	// deposit boxes.
	WithdrawAmount *coin.Coin `protobuf:"bytes,2,opt,name=withdraw_amount,json=withdrawAmount,proto3" json:"withdraw_amount"`
	SwapFee        *coin.Coin `protobuf:"bytes,3,opt,name=swap_fee,json=swapFee,proto3" json:"swap_fee"`
	TxFee          *coin.Coin `protobuf:"bytes,4,opt,name=tx_fee,json=txFee,proto3" json:"tx_fee"`
}

func (m *LockBox) Reset()         { *m = LockBox{} }
func (m *LockBox) String() string { return proto.CompactTextString(m) }
func (*LockBox) ProtoMessage()    {}

// Configuration of the simple lock box engine.
type Configuration struct {
	// Owner can update this configuration.
	Owner lockbox.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	// Manager opens withdraw boxes and closes boxes of both directions.
	Manager      lockbox.Address `protobuf:"bytes,2,opt,name=manager,proto3" json:"manager"`
	NativeTicker string          `protobuf:"bytes,3,opt,name=native_ticker,json=nativeTicker,proto3" json:"native_ticker"`
	PointTicker  string          `protobuf:"bytes,4,opt,name=point_ticker,json=pointTicker,proto3" json:"point_ticker"`
	// Unit is the price at which a point is worth one native coin.
	Unit uint64 `protobuf:"varint,5,opt,name=unit,proto3" json:"unit"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}
