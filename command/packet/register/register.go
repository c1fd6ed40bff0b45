package register

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/command/helper"
)

func GetCommand() *cobra.Command {
	registerCmd := &cobra.Command{
		Use:     "register",
		Short:   "Registers a packet observed on the source network. The caller must be the admin",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(registerCmd)
	setRequiredFlags(registerCmd)

	return registerCmd
}

func setFlags(cmd *cobra.Command) {
	params.RegisterFlags(cmd)

	cmd.Flags().StringVar(
		&params.caller,
		command.CallerFlag,
		"",
		"the identity of the admin registering the packet",
	)

	cmd.Flags().StringVar(
		&params.dstNetwork,
		dstNetworkFlag,
		"",
		"the network the packet is delivered to",
	)

	cmd.Flags().StringVar(
		&params.data,
		dataFlag,
		"",
		"the packet payload as hex",
	)
}

func setRequiredFlags(cmd *cobra.Command) {
	for _, requiredFlag := range params.getRequiredFlags() {
		_ = cmd.MarkFlagRequired(requiredFlag)
	}
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return params.initRawParams()
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

	if err := params.registerPacket(client); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}
