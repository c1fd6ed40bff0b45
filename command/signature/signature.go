package signature

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command/helper"
	"github.com/0xPolygon/relay-aggregator/command/signature/list"
	"github.com/0xPolygon/relay-aggregator/command/signature/submit"
)

func GetCommand() *cobra.Command {
	signatureCmd := &cobra.Command{
		Use:   "signature",
		Short: "Top level command for submitting and listing relayer signatures. Only accepts subcommands.",
	}

	helper.RegisterJSONRPCFlag(signatureCmd)

	registerSubcommands(signatureCmd)

	return signatureCmd
}

func registerSubcommands(baseCmd *cobra.Command) {
	baseCmd.AddCommand(
		// signature submit
		submit.GetCommand(),
		// signature list
		list.GetCommand(),
	)
}
