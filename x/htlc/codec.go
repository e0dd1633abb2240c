package htlc

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/x/escrow"
)

// Box is a hashed timelock box of either direction. The asset is the ticker
// of the principal.
type Box struct {
	Header *escrow.Header `protobuf:"bytes,1,opt,name=header,proto3" json:"header"`
	// TimeLock is the number of seconds after creation at which the box
	// can be expired.
	TimeLock   int64           `protobuf:"varint,2,opt,name=time_lock,json=timeLock,proto3" json:"time_lock"`
	Withdrawer lockbox.Address `protobuf:"bytes,3,opt,name=withdrawer,proto3" json:"withdrawer"`
	SecretHash HexBytes        `protobuf:"bytes,4,opt,name=secret_hash,json=secretHash,proto3" json:"secret_hash"`
	// Secret is empty until the box is closed.
	Secret        HexBytes `protobuf:"bytes,5,opt,name=secret,proto3" json:"secret,omitempty"`
	HashAlgorithm string   `protobuf:"bytes,6,opt,name=hash_algorithm,json=hashAlgorithm,proto3" json:"hash_algorithm"`
}

func (m *Box) Reset()         { *m = Box{} }
func (m *Box) String() string { return proto.CompactTextString(m) }
func (*Box) ProtoMessage()    {}

// Configuration of the hashed timelock engine.
type Configuration struct {
	// Owner can update this configuration.
	Owner lockbox.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	// Manager opens withdraw boxes.
	Manager lockbox.Address `protobuf:"bytes,2,opt,name=manager,proto3" json:"manager"`
	// DepositTimeLock in seconds.
	DepositTimeLock int64 `protobuf:"varint,3,opt,name=deposit_time_lock,json=depositTimeLock,proto3" json:"deposit_time_lock"`
	// WithdrawTimeLock in seconds. Half of the deposit time lock when not
	// set.
	WithdrawTimeLock int64  `protobuf:"varint,4,opt,name=withdraw_time_lock,json=withdrawTimeLock,proto3" json:"withdraw_time_lock,omitempty"`
	HashAlgorithm    string `protobuf:"bytes,5,opt,name=hash_algorithm,json=hashAlgorithm,proto3" json:"hash_algorithm,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}
