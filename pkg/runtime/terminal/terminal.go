package terminal

import (
	"io"
	"os"

	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/commands"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	output  io.Writer
	logger  zerolog.Logger
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Logger zerolog.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		output: opts.Output,
		logger: opts.Logger,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales-atlas",
		Short: "Sales analytics pipeline",
	}

	cmd.SetOut(cli.output)
	cmd.AddCommand(commands.NewAnalyzeCmd(cli.logger))
	cmd.AddCommand(commands.NewInspectCmd(cli.logger))

	return cmd
}
