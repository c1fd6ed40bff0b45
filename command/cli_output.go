package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

type CLIOutput struct {
	commonOutputFormatter
}

func newCLIOutput(cmd *cobra.Command) *CLIOutput {
	return &CLIOutput{commonOutputFormatter{baseCmd: cmd}}
}

func (cli *CLIOutput) WriteOutput() {
	if cli.errorOutput != nil {
		_, _ = fmt.Fprintln(cli.baseCmd.ErrOrStderr(), cli.getErrorOutput())

		return
	}

	if cli.commandOutput == nil {
		return
	}

	_, _ = fmt.Fprintln(cli.baseCmd.OutOrStdout(), cli.getCommandOutput())
}

func (cli *CLIOutput) getErrorOutput() string {
	return cli.errorOutput.Error()
}

func (cli *CLIOutput) getCommandOutput() string {
	return cli.commandOutput.GetOutput()
}
