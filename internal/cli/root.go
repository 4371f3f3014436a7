package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the mixtrain CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mixtrain",
		Short: "Event mixing for invariant-mass background estimation",
		Long: `mixtrain synthesizes combinatorial background candidates by pairing
particles from each event with particles drawn from a bounded pool of
nearby events, recording the invariant mass, transverse momentum and
rapidity of every mixed candidate in a flat output table.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.Verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"per-candidate mixing trace (large performance impact)")

	cmd.AddCommand(NewMixCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// configureLogging installs the process-wide slog handler. Verbose
// switches on the per-candidate Debug trace.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
