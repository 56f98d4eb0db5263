package terminal

import (
	"context"
	"io"
	"os"

	"github.com/cosmo-clinic/billing-atlas/pkg/runtime/terminal/commands"
	"github.com/cosmo-clinic/billing-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env      *commands.Env
	reporter *export.Reporter
	printer  *Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Env    *commands.Env
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		env:      opts.Env,
		reporter: export.NewReporter(opts.Output),
		printer:  NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Clinic billing reports and exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cli.env.Profile, "profile", cli.env.Profile, "Profile from the profiles file to use")
	cmd.PersistentFlags().StringVar(&cli.env.BaseURL, "base-url", cli.env.BaseURL, "Clinic API base URL, overrides the profile and settings")

	cmd.AddCommand(commands.NewReportCmd(cli.env, cli.reporter))
	cmd.AddCommand(commands.NewWeeksCmd(cli.env))
	cmd.AddCommand(commands.NewBillCmd(cli.env, cli.reporter))
	cmd.AddCommand(commands.NewProcedureBillCmd(cli.env, cli.reporter))
	cmd.AddCommand(commands.NewNotificationsCmd(cli.env, cli.printer))
	cmd.AddCommand(commands.NewHistoryCmd(cli.env, cli.printer))
	cmd.AddCommand(commands.NewPatientCmd(cli.env))
	cmd.AddCommand(commands.NewComplaintsCmd(cli.env))
	cmd.AddCommand(commands.NewLoginCmd(cli.env))
	cmd.AddCommand(commands.NewProfilesCmd(cli.env))

	return cmd
}
