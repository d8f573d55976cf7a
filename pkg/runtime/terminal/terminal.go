// Package terminal is the command-line front of the report builder: thin
// cobra wiring over the report service, template registry and config store.
package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fraud-tools/scam-report-builder/pkg/runtime/terminal/commands"
	"github.com/fraud-tools/scam-report-builder/pkg/services/report"
	"github.com/fraud-tools/scam-report-builder/pkg/services/template"
	"github.com/fraud-tools/scam-report-builder/pkg/store/config"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Reports   *report.Service
	Templates *template.Registry
	Config    *config.Store
	Output    io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{}
	cli.rootCmd = newRootCmd(opts)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func newRootCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scam-report",
		Short: "Scam report builder",
		Long:  "Build OpenDocument scam reports from structured report data and evidence images.",
	}

	cmd.AddCommand(commands.NewExportCmd(opts.Reports, opts.Output))
	cmd.AddCommand(commands.NewModifyCmd(opts.Reports, opts.Output))
	cmd.AddCommand(commands.NewTemplatesCmd(opts.Templates, opts.Output))
	cmd.AddCommand(commands.NewConfigCmd(opts.Config, opts.Output))

	return cmd
}
