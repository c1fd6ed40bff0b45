package get

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/command/helper"
)

func GetCommand() *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Returns a registered packet and whether it reached quorum",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}

	params.RegisterFlags(getCmd)
	setRequiredFlags(getCmd)

	return getCmd
}

func setRequiredFlags(cmd *cobra.Command) {
	for _, requiredFlag := range params.getRequiredFlags() {
		_ = cmd.MarkFlagRequired(requiredFlag)
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

	if err := params.initPacket(client); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}
