package register

import (
	"fmt"
	"math/big"

	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/command/helper"
	"github.com/0xPolygon/relay-aggregator/helper/common"
	"github.com/0xPolygon/relay-aggregator/helper/hex"
	"github.com/0xPolygon/relay-aggregator/jsonrpc"
	"github.com/0xPolygon/relay-aggregator/types"
)

const (
	dstNetworkFlag = "dst-network"
	dataFlag       = "data"
)

var (
	params = &registerParams{}
)

type registerParams struct {
	helper.PacketKeyParams

	caller     string
	dstNetwork string
	data       string

	srcSn     *big.Int
	dataBytes []byte

	id string
}

func (p *registerParams) getRequiredFlags() []string {
	return append(
		p.RequiredFlags(),
		command.CallerFlag,
		dstNetworkFlag,
	)
}

func (p *registerParams) initRawParams() error {
	var err error

	if p.srcSn, err = p.ParsedSrcSn(); err != nil {
		return err
	}

	if p.dataBytes, err = common.ParseBytes(&p.data); err != nil {
		return fmt.Errorf("invalid packet data: %w", err)
	}

	return nil
}

func (p *registerParams) registerPacket(client *jsonrpc.RelayClient) error {
	id, err := client.RegisterPacket(
		types.StringToAddress(p.caller),
		p.SrcNetwork,
		p.ContractAddress,
		p.srcSn,
		p.dstNetwork,
		p.dataBytes,
	)
	if err != nil {
		return err
	}

	p.id = id

	return nil
}

func (p *registerParams) getResult() command.CommandResult {
	return &RegisterResult{
		ID:              p.id,
		SrcNetwork:      p.SrcNetwork,
		ContractAddress: p.ContractAddress,
		SrcSn:           p.srcSn.String(),
		DstNetwork:      p.dstNetwork,
		Data:            hex.EncodeToHex(p.dataBytes),
	}
}
