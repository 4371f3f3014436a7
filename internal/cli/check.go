package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mixtrain/mixtrain/internal/config"
	"github.com/mixtrain/mixtrain/internal/mix"
	"github.com/mixtrain/mixtrain/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Input  string
	Table  string
	Config string
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a run configuration against an input table",
		Long: `Validate the run configuration and report every required input
column that is missing from the event table's schema. Missing columns
do not stop a mixing run, but reads of them fail at first use.

Exit code 0 when the schema is complete, 1 when any column is missing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "", "path to input SQLite database (required)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "name of the input event table (required)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to run configuration, .cue or .yaml (required)")
	for _, flag := range []string{"input", "table", "config"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	tab, err := store.OpenTable(opts.Input, opts.Table)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open input table", err)
	}
	defer func() {
		if closeErr := tab.Close(); closeErr != nil {
			slog.Error("error closing input database", "error", closeErr)
		}
	}()

	missing := 0
	for _, cc := range cfg.Combinations {
		combo := mix.Combination{Name: cc.Name, Stems: cc.Stems}
		missing += len(mix.MissingColumns(tab, combo))
	}

	if missing > 0 {
		return NewExitError(ExitFailure,
			fmt.Sprintf("%d required column(s) missing from table %q", missing, opts.Table))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Schema of %q covers all configured stems.\n", opts.Table)
	return nil
}
