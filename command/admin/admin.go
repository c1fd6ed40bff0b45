package admin

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command/admin/get"
	"github.com/0xPolygon/relay-aggregator/command/admin/set"
	"github.com/0xPolygon/relay-aggregator/command/helper"
)

func GetCommand() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Top level command for reading and replacing the leader relayer. Only accepts subcommands.",
	}

	helper.RegisterJSONRPCFlag(adminCmd)

	registerSubcommands(adminCmd)

	return adminCmd
}

func registerSubcommands(baseCmd *cobra.Command) {
	baseCmd.AddCommand(
		// admin get
		get.GetCommand(),
		// admin set
		set.GetCommand(),
	)
}
