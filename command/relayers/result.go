package relayers

import (
	"bytes"
	"fmt"

	"github.com/0xPolygon/relay-aggregator/command/helper"
	"github.com/0xPolygon/relay-aggregator/jsonrpc"
)

type RelayersResult struct {
	Relayers  []string `json:"relayers"`
	Threshold int      `json:"threshold"`
}

func newRelayersResult(relayers *jsonrpc.Relayers) *RelayersResult {
	res := &RelayersResult{
		Relayers:  make([]string, len(relayers.Relayers)),
		Threshold: relayers.Threshold,
	}

	for i, relayer := range relayers.Relayers {
		res.Relayers[i] = relayer.String()
	}

	return res
}

func (r *RelayersResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[RELAYERS]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Count|%d", len(r.Relayers)),
		fmt.Sprintf("Threshold|%d", r.Threshold),
	}))
	buffer.WriteString("\n")

	if len(r.Relayers) == 0 {
		buffer.WriteString("No relayers registered\n")

		return buffer.String()
	}

	rows := make([]string, len(r.Relayers)+1)
	rows[0] = "Index|Relayer"

	for i, relayer := range r.Relayers {
		rows[i+1] = fmt.Sprintf("%d|%s", i, relayer)
	}

	buffer.WriteString("\n")
	buffer.WriteString(helper.FormatList(rows))
	buffer.WriteString("\n")

	return buffer.String()
}
