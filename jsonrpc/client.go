package jsonrpc

import (
	"math/big"

	"github.com/umbracle/ethgo/jsonrpc"

	"github.com/0xPolygon/relay-aggregator/helper/hex"
	"github.com/0xPolygon/relay-aggregator/types"
)

// RelayClient is a wrapper around jsonrpc.Client for the relay_ endpoint
type RelayClient struct {
	client *jsonrpc.Client
}

// Packet is a registered packet as returned by relay_getPacket
type Packet struct {
	ID              string         `json:"id"`
	SrcNetwork      string         `json:"srcNetwork"`
	ContractAddress string         `json:"contractAddress"`
	SrcSn           string         `json:"srcSn"`
	DstNetwork      string         `json:"dstNetwork"`
	Data            types.HexBytes `json:"data"`
}

// Relayers is the relayer set as returned by relay_getRelayers
type Relayers struct {
	Relayers  []types.Address `json:"relayers"`
	Threshold int             `json:"threshold"`
}

// NewRelayClient creates a new RelayClient
func NewRelayClient(url string) (*RelayClient, error) {
	client, err := jsonrpc.NewClient(url)
	if err != nil {
		return nil, err
	}

	return &RelayClient{client}, nil
}

func (r *RelayClient) Close() error {
	return r.client.Close()
}

func (r *RelayClient) GetAdmin() (types.Address, error) {
	var admin types.Address
	if err := r.client.Call("relay_getAdmin", &admin); err != nil {
		return types.ZeroAddress, err
	}

	return admin, nil
}

func (r *RelayClient) SetAdmin(caller, admin types.Address) error {
	var ok bool

	return r.client.Call("relay_setAdmin", &ok, caller, admin)
}

// RegisterPacket registers a packet and returns its display id
func (r *RelayClient) RegisterPacket(
	caller types.Address,
	srcNetwork, contractAddress string,
	srcSn *big.Int,
	dstNetwork string,
	data []byte,
) (string, error) {
	var id string

	err := r.client.Call(
		"relay_registerPacket",
		&id,
		caller,
		srcNetwork,
		contractAddress,
		hex.EncodeBig(srcSn),
		dstNetwork,
		hex.EncodeToHex(data),
	)

	return id, err
}

func (r *RelayClient) SubmitSignature(
	caller types.Address,
	srcNetwork, contractAddress string,
	srcSn *big.Int,
	signature []byte,
) error {
	var ok bool

	return r.client.Call(
		"relay_submitSignature",
		&ok,
		caller,
		srcNetwork,
		contractAddress,
		hex.EncodeBig(srcSn),
		hex.EncodeToHex(signature),
	)
}

func (r *RelayClient) GetSignatures(srcNetwork, contractAddress string, srcSn *big.Int) ([][]byte, error) {
	var res []types.HexBytes
	if err := r.client.Call("relay_getSignatures", &res, srcNetwork, contractAddress, hex.EncodeBig(srcSn)); err != nil {
		return nil, err
	}

	signatures := make([][]byte, len(res))
	for i, signature := range res {
		signatures[i] = signature
	}

	return signatures, nil
}

func (r *RelayClient) GetPacket(srcNetwork, contractAddress string, srcSn *big.Int) (*Packet, error) {
	var p Packet
	if err := r.client.Call("relay_getPacket", &p, srcNetwork, contractAddress, hex.EncodeBig(srcSn)); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *RelayClient) IsConfirmed(srcNetwork, contractAddress string, srcSn *big.Int) (bool, error) {
	var confirmed bool
	err := r.client.Call("relay_isConfirmed", &confirmed, srcNetwork, contractAddress, hex.EncodeBig(srcSn))

	return confirmed, err
}

func (r *RelayClient) GetRelayers() (*Relayers, error) {
	var res Relayers
	if err := r.client.Call("relay_getRelayers", &res); err != nil {
		return nil, err
	}

	return &res, nil
}
