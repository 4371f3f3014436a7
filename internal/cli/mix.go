package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mixtrain/mixtrain/internal/config"
	"github.com/mixtrain/mixtrain/internal/hist"
	"github.com/mixtrain/mixtrain/internal/mix"
	"github.com/mixtrain/mixtrain/internal/store"
)

// MixOptions holds flags for the mix command.
type MixOptions struct {
	*RootOptions
	Input    string
	Table    string
	Output   string
	Config   string
	Progress bool
	HistDir  string
	HistBins int

	// Tokens allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens mix.RunTokenGenerator
}

// NewMixCommand creates the mix command.
func NewMixCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MixOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Run event mixing over an input event table",
		Long: `Run the full mixing scan: order the input table by (runNumber,
eventNumber), slide the bounded event pool over the stream, and write
one output table of mixed candidates per configured combination.

Example:
  mixtrain mix --input events.db --table candidates \
      --config mix.cue --output mixed.db --progress`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMix(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "", "path to input SQLite database (required)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "name of the input event table (required)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "path to output SQLite database (required)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to run configuration, .cue or .yaml (required)")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "print scan progress to stderr")
	cmd.Flags().StringVar(&opts.HistDir, "hist", "", "directory for invariant-mass spectrum plots (optional)")
	cmd.Flags().IntVar(&opts.HistBins, "hist-bins", hist.DefaultBins, "bin count for spectrum plots")
	for _, flag := range []string{"input", "table", "output", "config"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}

func runMix(opts *MixOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

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

	out, err := store.Open(opts.Output)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open output database", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			slog.Error("error closing output database", "error", closeErr)
		}
	}()

	tokens := opts.Tokens
	if tokens == nil {
		tokens = mix.UUIDv7Generator{}
	}
	token := tokens.Generate()
	snapshot, err := cfg.Snapshot()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to snapshot config", err)
	}
	if err := out.RecordRun(ctx, token, snapshot); err != nil {
		return WrapExitError(ExitCommandError, "failed to record run", err)
	}
	slog.Info("mixing run starting",
		"token", token,
		"input", opts.Input,
		"table", opts.Table,
		"train_length", cfg.TrainLength,
	)

	var total int64
	for _, cc := range cfg.Combinations {
		combo := mix.Combination{Name: cc.Name, Stems: cc.Stems}
		slog.Info("will mix",
			"daughters", strings.Join(combo.Stems, ", "),
			"candidate", combo.Name,
		)

		rows, err := mixCombination(ctx, opts, cmd, tab, out, combo, cfg.TrainLength)
		if err != nil {
			return err
		}
		total += rows
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Mixed %d candidates into %s.\n", total, opts.Output)
	return nil
}

// mixCombination runs one combination's scan pass end to end: schema
// check, mixing, commit, and the optional spectrum plot.
func mixCombination(
	ctx context.Context,
	opts *MixOptions,
	cmd *cobra.Command,
	tab *store.EventTable,
	out *store.Store,
	combo mix.Combination,
	trainLength int,
) (int64, error) {
	var mixOpts []mix.Option
	if opts.Progress {
		mixOpts = append(mixOpts, mix.WithProgress(cmd.ErrOrStderr()))
	}

	var spectrum *hist.Spectrum
	if opts.HistDir != "" {
		spectrum = hist.NewSpectrum(combo.Name, opts.HistBins)
		mixOpts = append(mixOpts, mix.WithMassObserver(spectrum.Fill))
	}

	mixer := mix.NewMixer(tab, combo, trainLength, mixOpts...)
	mixer.CheckSchema()

	writer, err := out.NewMixWriter(ctx, "mix_"+combo.Name, combo.Columns())
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "failed to create output table", err)
	}
	defer writer.Close()

	rows, err := mixer.Run(ctx, writer)
	if err != nil {
		return rows, WrapExitError(ExitFailure, fmt.Sprintf("mixing %q failed", combo.Name), err)
	}
	if err := writer.Commit(); err != nil {
		return rows, WrapExitError(ExitFailure, "failed to commit output", err)
	}

	if spectrum != nil && spectrum.Entries() > 0 {
		path := filepath.Join(opts.HistDir, combo.Name+".png")
		if err := spectrum.Save(path); err != nil {
			return rows, WrapExitError(ExitFailure, "failed to save spectrum", err)
		}
		slog.Info("spectrum saved", "combination", combo.Name, "path", path)
	}

	return rows, nil
}
