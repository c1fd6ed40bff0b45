package types

import (
	"bytes"
	"math/big"

	"github.com/0xPolygon/relay-aggregator/helper/common"
)

const packetIDSeparator = "-"

// Packet is a cross-chain message awaiting relay confirmation
type Packet struct {
	SrcNetwork      string
	ContractAddress string
	SrcSn           *big.Int
	DstNetwork      string
	Data            []byte
}

// NewPacket builds a packet, copying the serial number and the payload
func NewPacket(srcNetwork, contractAddress string, srcSn *big.Int, dstNetwork string, data []byte) *Packet {
	p := &Packet{
		SrcNetwork:      srcNetwork,
		ContractAddress: contractAddress,
		DstNetwork:      dstNetwork,
		Data:            append([]byte{}, data...),
	}

	if srcSn != nil {
		p.SrcSn = new(big.Int).Set(srcSn)
	}

	return p
}

// ID returns the human readable identity of the packet
func (p *Packet) ID() PacketID {
	return CreatePacketID(p.SrcNetwork, p.ContractAddress, p.SrcSn)
}

// Key returns the storage identity of the packet
func (p *Packet) Key() PacketKey {
	return CreatePacketKey(p.SrcNetwork, p.ContractAddress, p.SrcSn)
}

// Copy returns a deep copy of the packet
func (p *Packet) Copy() *Packet {
	return NewPacket(p.SrcNetwork, p.ContractAddress, p.SrcSn, p.DstNetwork, p.Data)
}

// Equal compares two packets field by field
func (p *Packet) Equal(other *Packet) bool {
	if p == nil || other == nil {
		return p == other
	}

	return p.SrcNetwork == other.SrcNetwork &&
		p.ContractAddress == other.ContractAddress &&
		cmpSn(p.SrcSn, other.SrcSn) &&
		p.DstNetwork == other.DstNetwork &&
		bytes.Equal(p.Data, other.Data)
}

func cmpSn(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Cmp(b) == 0
}

// PacketID is the composite identity srcNetwork-contractAddress-srcSn.
// It is used in logs, events and the RPC surface; storage uses PacketKey.
type PacketID string

func (id PacketID) String() string {
	return string(id)
}

// CreatePacketID joins the identifying triple with the '-' separator
func CreatePacketID(srcNetwork, contractAddress string, srcSn *big.Int) PacketID {
	sn := "0"
	if srcSn != nil {
		sn = srcSn.String()
	}

	return PacketID(srcNetwork + packetIDSeparator + contractAddress + packetIDSeparator + sn)
}

// PacketKey is the length-prefixed encoding of the identifying triple:
//
//	uint32(len(srcNetwork)) || srcNetwork ||
//	uint32(len(contractAddress)) || contractAddress ||
//	uint32(len(srcSn)) || srcSn (big endian magnitude)
//
// Unlike PacketID it cannot collide when a component contains the separator.
type PacketKey []byte

func (k PacketKey) Bytes() []byte {
	return k[:]
}

// CreatePacketKey computes the storage key of a packet
func CreatePacketKey(srcNetwork, contractAddress string, srcSn *big.Int) PacketKey {
	var sn []byte
	if srcSn != nil {
		sn = srcSn.Bytes()
	}

	buf := make([]byte, 0, 12+len(srcNetwork)+len(contractAddress)+len(sn))
	buf = appendLengthPrefixed(buf, []byte(srcNetwork))
	buf = appendLengthPrefixed(buf, []byte(contractAddress))
	buf = appendLengthPrefixed(buf, sn)

	return buf
}

func appendLengthPrefixed(dst, value []byte) []byte {
	dst = append(dst, common.EncodeUint32ToBytes(uint32(len(value)))...)

	return append(dst, value...)
}
