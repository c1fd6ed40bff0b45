package get

import (
	"bytes"
	"fmt"

	"github.com/0xPolygon/relay-aggregator/command/helper"
)

type AdminResult struct {
	Admin string `json:"admin"`
}

func (r *AdminResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[ADMIN]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Admin|%s", r.Admin),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
