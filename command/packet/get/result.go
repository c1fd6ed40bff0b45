package get

import (
	"bytes"
	"fmt"

	"github.com/0xPolygon/relay-aggregator/command/helper"
)

type PacketResult struct {
	ID              string `json:"id"`
	SrcNetwork      string `json:"srcNetwork"`
	ContractAddress string `json:"contractAddress"`
	SrcSn           string `json:"srcSn"`
	DstNetwork      string `json:"dstNetwork"`
	Data            string `json:"data"`
	Confirmed       bool   `json:"confirmed"`
}

func (r *PacketResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[PACKET]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("ID|%s", r.ID),
		fmt.Sprintf("Source network|%s", r.SrcNetwork),
		fmt.Sprintf("Contract address|%s", r.ContractAddress),
		fmt.Sprintf("Source serial number|%s", r.SrcSn),
		fmt.Sprintf("Destination network|%s", r.DstNetwork),
		fmt.Sprintf("Data|%s", r.Data),
		fmt.Sprintf("Confirmed|%t", r.Confirmed),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
