package currency

import "github.com/gogo/protobuf/proto"

// TokenInfo describes a registered asset. It is stored under its ticker.
type TokenInfo struct {
	// Name is the human readable name of the asset.
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	// SigFigs is the number of significant fractional digits that the
	// asset supports.
	SigFigs int32 `protobuf:"varint,2,opt,name=sig_figs,json=sigFigs,proto3" json:"sig_figs,omitempty"`
}

func (m *TokenInfo) Reset()         { *m = TokenInfo{} }
func (m *TokenInfo) String() string { return proto.CompactTextString(m) }
func (*TokenInfo) ProtoMessage()    {}
