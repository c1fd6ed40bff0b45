package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command/admin"
	"github.com/0xPolygon/relay-aggregator/command/helper"
	"github.com/0xPolygon/relay-aggregator/command/packet"
	"github.com/0xPolygon/relay-aggregator/command/relayers"
	"github.com/0xPolygon/relay-aggregator/command/server"
	"github.com/0xPolygon/relay-aggregator/command/signature"
	"github.com/0xPolygon/relay-aggregator/command/version"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Use:   "relay-aggregator",
			Short: "Relay Aggregator collects relayer signatures over cross-network packets until they reach quorum",
		},
	}

	helper.RegisterJSONOutputFlag(rootCommand.baseCmd)

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		version.GetCommand(),
		server.GetCommand(),
		admin.GetCommand(),
		packet.GetCommand(),
		signature.GetCommand(),
		relayers.GetCommand(),
	)
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
