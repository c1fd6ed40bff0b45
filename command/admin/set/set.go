package set

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/command/helper"
)

func GetCommand() *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Replaces the leader relayer. The caller must be the current admin",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}

	setFlags(setCmd)
	setRequiredFlags(setCmd)

	return setCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&params.caller,
		command.CallerFlag,
		"",
		"the identity of the current admin",
	)

	cmd.Flags().StringVar(
		&params.admin,
		adminFlag,
		"",
		"the identity of the new admin",
	)
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

	if err := client.SetAdmin(params.callerAddress(), params.adminAddress()); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}
