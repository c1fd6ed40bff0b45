package set

import (
	"bytes"
	"fmt"

	"github.com/0xPolygon/relay-aggregator/command/helper"
)

type SetAdminResult struct {
	Previous string `json:"previous"`
	Admin    string `json:"admin"`
}

func (r *SetAdminResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[ADMIN UPDATED]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Previous admin|%s", r.Previous),
		fmt.Sprintf("New admin|%s", r.Admin),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
