package set

import (
	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/types"
)

const (
	adminFlag = "admin"
)

var (
	params = &setParams{}
)

type setParams struct {
	caller string
	admin  string
}

func (p *setParams) getRequiredFlags() []string {
	return []string{
		command.CallerFlag,
		adminFlag,
	}
}

func (p *setParams) callerAddress() types.Address {
	return types.StringToAddress(p.caller)
}

func (p *setParams) adminAddress() types.Address {
	return types.StringToAddress(p.admin)
}

func (p *setParams) getResult() command.CommandResult {
	return &SetAdminResult{
		Previous: p.caller,
		Admin:    p.admin,
	}
}
