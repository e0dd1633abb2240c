package feemgr

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
)

// Configuration of the fee manager registry.
type Configuration struct {
	// Manager is the only account allowed to reassign collectors.
	Manager lockbox.Address `protobuf:"bytes,1,opt,name=manager,proto3" json:"manager"`
	// TxFeeCollector accrues transaction fees.
	TxFeeCollector lockbox.Address `protobuf:"bytes,2,opt,name=tx_fee_collector,json=txFeeCollector,proto3" json:"tx_fee_collector"`
	// SwapFeeCollector accrues swap fees.
	SwapFeeCollector lockbox.Address `protobuf:"bytes,3,opt,name=swap_fee_collector,json=swapFeeCollector,proto3" json:"swap_fee_collector"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}
