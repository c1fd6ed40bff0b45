package list

import (
	"bytes"
	"fmt"

	"github.com/0xPolygon/relay-aggregator/command/helper"
)

type SignaturesResult struct {
	ID         string   `json:"id"`
	Signatures []string `json:"signatures"`
	Threshold  int      `json:"threshold"`
}

func (r *SignaturesResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[SIGNATURES]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Packet|%s", r.ID),
		fmt.Sprintf("Collected|%d", len(r.Signatures)),
		fmt.Sprintf("Threshold|%d", r.Threshold),
	}))
	buffer.WriteString("\n")

	if len(r.Signatures) == 0 {
		buffer.WriteString("No signatures collected\n")

		return buffer.String()
	}

	rows := make([]string, len(r.Signatures)+1)
	rows[0] = "Index|Signature"

	for i, signature := range r.Signatures {
		rows[i+1] = fmt.Sprintf("%d|%s", i, signature)
	}

	buffer.WriteString("\n")
	buffer.WriteString(helper.FormatList(rows))
	buffer.WriteString("\n")

	return buffer.String()
}
