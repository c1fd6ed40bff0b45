package list

import (
	"math/big"

	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/command/helper"
	"github.com/0xPolygon/relay-aggregator/helper/hex"
	"github.com/0xPolygon/relay-aggregator/jsonrpc"
	"github.com/0xPolygon/relay-aggregator/types"
)

var (
	params = &listParams{}
)

type listParams struct {
	helper.PacketKeyParams

	srcSn      *big.Int
	signatures [][]byte
	threshold  int
}

func (p *listParams) getRequiredFlags() []string {
	return p.RequiredFlags()
}

func (p *listParams) initSignatures(client *jsonrpc.RelayClient) error {
	var err error

	if p.srcSn, err = p.ParsedSrcSn(); err != nil {
		return err
	}

	if p.signatures, err = client.GetSignatures(p.SrcNetwork, p.ContractAddress, p.srcSn); err != nil {
		return err
	}

	relayers, err := client.GetRelayers()
	if err != nil {
		return err
	}

	p.threshold = relayers.Threshold

	return nil
}

func (p *listParams) getResult() command.CommandResult {
	signatures := make([]string, len(p.signatures))
	for i, signature := range p.signatures {
		signatures[i] = hex.EncodeToHex(signature)
	}

	return &SignaturesResult{
		ID:         types.CreatePacketID(p.SrcNetwork, p.ContractAddress, p.srcSn).String(),
		Signatures: signatures,
		Threshold:  p.threshold,
	}
}
