package submit

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
	signatureFlag = "signature"
)

var (
	params = &submitParams{}
)

type submitParams struct {
	helper.PacketKeyParams

	caller    string
	signature string

	srcSn          *big.Int
	signatureBytes []byte

	confirmed bool
}

func (p *submitParams) getRequiredFlags() []string {
	return append(
		p.RequiredFlags(),
		command.CallerFlag,
		signatureFlag,
	)
}

func (p *submitParams) initRawParams() error {
	var err error

	if p.srcSn, err = p.ParsedSrcSn(); err != nil {
		return err
	}

	if p.signatureBytes, err = common.ParseBytes(&p.signature); err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}

	return nil
}

func (p *submitParams) submitSignature(client *jsonrpc.RelayClient) error {
	if err := client.SubmitSignature(
		types.StringToAddress(p.caller),
		p.SrcNetwork,
		p.ContractAddress,
		p.srcSn,
		p.signatureBytes,
	); err != nil {
		return err
	}

	confirmed, err := client.IsConfirmed(p.SrcNetwork, p.ContractAddress, p.srcSn)
	if err != nil {
		return err
	}

	p.confirmed = confirmed

	return nil
}

func (p *submitParams) getResult() command.CommandResult {
	return &SubmitResult{
		ID:        types.CreatePacketID(p.SrcNetwork, p.ContractAddress, p.srcSn).String(),
		Relayer:   p.caller,
		Signature: hex.EncodeToHex(p.signatureBytes),
		Confirmed: p.confirmed,
	}
}
