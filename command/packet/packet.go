package packet

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command/helper"
	"github.com/0xPolygon/relay-aggregator/command/packet/get"
	"github.com/0xPolygon/relay-aggregator/command/packet/register"
)

func GetCommand() *cobra.Command {
	packetCmd := &cobra.Command{
		Use:   "packet",
		Short: "Top level command for registering and inspecting packets. Only accepts subcommands.",
	}

	helper.RegisterJSONRPCFlag(packetCmd)

	registerSubcommands(packetCmd)

	return packetCmd
}

func registerSubcommands(baseCmd *cobra.Command) {
	baseCmd.AddCommand(
		// packet register
		register.GetCommand(),
		// packet get
		get.GetCommand(),
	)
}
