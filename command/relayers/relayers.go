package relayers

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/command/helper"
)

func GetCommand() *cobra.Command {
	relayersCmd := &cobra.Command{
		Use:   "relayers",
		Short: "Lists the relayer set and the number of signatures needed for quorum",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}

	helper.RegisterJSONRPCFlag(relayersCmd)

	return relayersCmd
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	client, err := helper.GetRelayClient(cmd)
	if err != nil {
		outputter.SetError(err)

		return
	}
	defer client.Close()

	relayers, err := client.GetRelayers()
	if err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(newRelayersResult(relayers))
}
