package jsonrpc

import (
	"math/big"

	"github.com/0xPolygon/relay-aggregator/types"
)

// relayStore provides access to the aggregator state and operations
type relayStore interface {
	GetAdmin() (types.Address, error)
	SetAdmin(caller, admin types.Address) error
	RegisterPacket(
		caller types.Address,
		srcNetwork, contractAddress string,
		srcSn *big.Int,
		dstNetwork string,
		data []byte,
	) error
	SubmitSignature(
		caller types.Address,
		srcNetwork, contractAddress string,
		srcSn *big.Int,
		signature []byte,
	) error
	GetSignatures(srcNetwork, contractAddress string, srcSn *big.Int) ([][]byte, error)
	GetPacket(srcNetwork, contractAddress string, srcSn *big.Int) (*types.Packet, error)
	IsConfirmed(srcNetwork, contractAddress string, srcSn *big.Int) (bool, error)
	GetRelayers() []types.Address
	Threshold() int
}

// Relay is the relay_ jsonrpc endpoint. Mutating methods take the
// caller identity as their first parameter.
type Relay struct {
	store relayStore
}

// GetAdmin returns the current admin
func (r *Relay) GetAdmin() (interface{}, error) {
	return r.store.GetAdmin()
}

// SetAdmin replaces the admin on behalf of caller
func (r *Relay) SetAdmin(caller types.Address, admin types.Address) (interface{}, error) {
	if err := r.store.SetAdmin(caller, admin); err != nil {
		return nil, err
	}

	return true, nil
}

// RegisterPacket registers a packet on behalf of caller
func (r *Relay) RegisterPacket(
	caller types.Address,
	srcNetwork string,
	contractAddress string,
	srcSn argBig,
	dstNetwork string,
	data argBytes,
) (interface{}, error) {
	err := r.store.RegisterPacket(caller, srcNetwork, contractAddress, srcSn.toBig(), dstNetwork, data)
	if err != nil {
		return nil, err
	}

	return types.CreatePacketID(srcNetwork, contractAddress, srcSn.toBig()), nil
}

// SubmitSignature adds the signature of caller to a registered packet
func (r *Relay) SubmitSignature(
	caller types.Address,
	srcNetwork string,
	contractAddress string,
	srcSn argBig,
	signature argBytes,
) (interface{}, error) {
	if err := r.store.SubmitSignature(caller, srcNetwork, contractAddress, srcSn.toBig(), signature); err != nil {
		return nil, err
	}

	return true, nil
}

// GetSignatures returns the packet signatures in relayer order
func (r *Relay) GetSignatures(srcNetwork string, contractAddress string, srcSn argBig) (interface{}, error) {
	signatures, err := r.store.GetSignatures(srcNetwork, contractAddress, srcSn.toBig())
	if err != nil {
		return nil, err
	}

	res := make([]argBytes, len(signatures))
	for i, signature := range signatures {
		res[i] = argBytes(signature)
	}

	return res, nil
}

// GetPacket returns a registered packet
func (r *Relay) GetPacket(srcNetwork string, contractAddress string, srcSn argBig) (interface{}, error) {
	p, err := r.store.GetPacket(srcNetwork, contractAddress, srcSn.toBig())
	if err != nil {
		return nil, err
	}

	return toPacket(p), nil
}

// IsConfirmed reports whether the packet holds quorum
func (r *Relay) IsConfirmed(srcNetwork string, contractAddress string, srcSn argBig) (interface{}, error) {
	return r.store.IsConfirmed(srcNetwork, contractAddress, srcSn.toBig())
}

// GetRelayers returns the relayer set and the current threshold
func (r *Relay) GetRelayers() (interface{}, error) {
	return &relayersResult{
		Relayers:  r.store.GetRelayers(),
		Threshold: r.store.Threshold(),
	}, nil
}

// GetThreshold returns the number of signatures required for quorum
func (r *Relay) GetThreshold() (interface{}, error) {
	return r.store.Threshold(), nil
}
