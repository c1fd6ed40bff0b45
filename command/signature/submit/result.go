package submit

import (
	"bytes"
	"fmt"

	"github.com/0xPolygon/relay-aggregator/command/helper"
)

type SubmitResult struct {
	ID        string `json:"id"`
	Relayer   string `json:"relayer"`
	Signature string `json:"signature"`
	Confirmed bool   `json:"confirmed"`
}

func (r *SubmitResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[SIGNATURE SUBMITTED]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Packet|%s", r.ID),
		fmt.Sprintf("Relayer|%s", r.Relayer),
		fmt.Sprintf("Signature|%s", r.Signature),
		fmt.Sprintf("Confirmed|%t", r.Confirmed),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
