package submit

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/command/helper"
)

func GetCommand() *cobra.Command {
	submitCmd := &cobra.Command{
		Use:     "submit",
		Short:   "Submits a relayer signature over a registered packet. The caller must be a relayer",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(submitCmd)
	setRequiredFlags(submitCmd)

	return submitCmd
}

func setFlags(cmd *cobra.Command) {
	params.RegisterFlags(cmd)

	cmd.Flags().StringVar(
		&params.caller,
		command.CallerFlag,
		"",
		"the identity of the relayer submitting the signature",
	)

	cmd.Flags().StringVar(
		&params.signature,
		signatureFlag,
		"",
		"the signature bytes as hex",
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

	if err := params.submitSignature(client); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}
