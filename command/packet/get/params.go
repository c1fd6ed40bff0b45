package get

import (
	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/command/helper"
	"github.com/0xPolygon/relay-aggregator/jsonrpc"
)

var (
	params = &getParams{}
)

type getParams struct {
	helper.PacketKeyParams

	packet    *jsonrpc.Packet
	confirmed bool
}

func (p *getParams) getRequiredFlags() []string {
	return p.RequiredFlags()
}

func (p *getParams) initPacket(client *jsonrpc.RelayClient) error {
	srcSn, err := p.ParsedSrcSn()
	if err != nil {
		return err
	}

	if p.packet, err = client.GetPacket(p.SrcNetwork, p.ContractAddress, srcSn); err != nil {
		return err
	}

	if p.confirmed, err = client.IsConfirmed(p.SrcNetwork, p.ContractAddress, srcSn); err != nil {
		return err
	}

	return nil
}

func (p *getParams) getResult() command.CommandResult {
	return &PacketResult{
		ID:              p.packet.ID,
		SrcNetwork:      p.packet.SrcNetwork,
		ContractAddress: p.packet.ContractAddress,
		SrcSn:           p.packet.SrcSn,
		DstNetwork:      p.packet.DstNetwork,
		Data:            p.packet.Data.String(),
		Confirmed:       p.confirmed,
	}
}
