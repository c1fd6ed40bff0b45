package get

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/command/helper"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Returns the current leader relayer",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}
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

	admin, err := client.GetAdmin()
	if err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(&AdminResult{Admin: admin.String()})
}
