package jsonrpc

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/0xPolygon/relay-aggregator/aggregator"
	"github.com/0xPolygon/relay-aggregator/helper/common"
	"github.com/0xPolygon/relay-aggregator/helper/hex"
	"github.com/0xPolygon/relay-aggregator/types"
)

// argBig is a non-negative sequence number. It accepts a 0x quantity or
// a decimal, either as a json string or a json number.
type argBig big.Int

func argBigPtr(b *big.Int) *argBig {
	v := argBig(*b)

	return &v
}

func (a *argBig) UnmarshalText(input []byte) error {
	str := string(input)

	b, err := common.ParseUint256orHex(&str)
	if err != nil {
		return err
	}

	if b.Sign() < 0 {
		return fmt.Errorf("negative sequence number %s", b)
	}

	*a = argBig(*b)

	return nil
}

func (a *argBig) UnmarshalJSON(input []byte) error {
	return a.UnmarshalText([]byte(strings.Trim(string(input), "\"")))
}

func (a argBig) MarshalText() ([]byte, error) {
	b := (*big.Int)(&a)

	return []byte("0x" + b.Text(16)), nil
}

func (a *argBig) toBig() *big.Int {
	return new(big.Int).Set((*big.Int)(a))
}

type argBytes []byte

func argBytesPtr(b []byte) *argBytes {
	bb := argBytes(b)

	return &bb
}

func (b argBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToHex(b)), nil
}

func (b *argBytes) UnmarshalText(input []byte) error {
	hh, err := hex.DecodeHex(string(input))
	if err != nil {
		return err
	}

	aux := make([]byte, len(hh))
	copy(aux, hh)
	*b = aux

	return nil
}

// packet is the json view of a registered packet
type packet struct {
	ID              string   `json:"id"`
	SrcNetwork      string   `json:"srcNetwork"`
	ContractAddress string   `json:"contractAddress"`
	SrcSn           argBig   `json:"srcSn"`
	DstNetwork      string   `json:"dstNetwork"`
	Data            argBytes `json:"data"`
}

func toPacket(p *types.Packet) *packet {
	return &packet{
		ID:              string(p.ID()),
		SrcNetwork:      p.SrcNetwork,
		ContractAddress: p.ContractAddress,
		SrcSn:           *argBigPtr(p.SrcSn),
		DstNetwork:      p.DstNetwork,
		Data:            argBytes(p.Data),
	}
}

// packetRegistered is the json payload of a packetRegistered notification
type packetRegistered struct {
	ID              string `json:"id"`
	SrcNetwork      string `json:"srcNetwork"`
	ContractAddress string `json:"contractAddress"`
	SrcSn           argBig `json:"srcSn"`
}

func toPacketRegistered(evnt *aggregator.PacketRegisteredEvent) *packetRegistered {
	return &packetRegistered{
		ID:              string(evnt.ID()),
		SrcNetwork:      evnt.SrcNetwork,
		ContractAddress: evnt.ContractAddress,
		SrcSn:           *argBigPtr(evnt.SrcSn),
	}
}

// packetConfirmed is the json payload of a packetConfirmed notification
type packetConfirmed struct {
	ID              string   `json:"id"`
	SrcNetwork      string   `json:"srcNetwork"`
	ContractAddress string   `json:"contractAddress"`
	SrcSn           argBig   `json:"srcSn"`
	DstNetwork      string   `json:"dstNetwork"`
	Data            argBytes `json:"data"`
}

func toPacketConfirmed(evnt *aggregator.PacketConfirmedEvent) *packetConfirmed {
	return &packetConfirmed{
		ID:              string(evnt.ID()),
		SrcNetwork:      evnt.SrcNetwork,
		ContractAddress: evnt.ContractAddress,
		SrcSn:           *argBigPtr(evnt.SrcSn),
		DstNetwork:      evnt.DstNetwork,
		Data:            argBytes(evnt.Data),
	}
}

type relayersResult struct {
	Relayers  []types.Address `json:"relayers"`
	Threshold int             `json:"threshold"`
}
