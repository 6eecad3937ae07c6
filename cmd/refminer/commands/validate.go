package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/refminer/pkg/config"
	"github.com/Sumatoshi-tech/refminer/pkg/snapshot"
)

// ErrInvalidSnapshot is returned when at least one validated snapshot fails.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var (
		configPath string
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "validate <snapshot>...",
		Short: "Validate snapshots against the snapshot schema",
		Long: `Check each snapshot against the embedded schema and build its model,
reporting schema and contract violations.

Examples:
  refminer validate before.yaml after.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			return runValidate(cmd.OutOrStdout(), args, snapshotOptions(cfg))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default: .refminer.yaml in . or $HOME)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

func runValidate(out io.Writer, paths []string, opts snapshot.Options) error {
	opts.ValidateSchema = true

	failed := 0

	for _, path := range paths {
		model, err := snapshot.Load(path, opts)
		if err != nil {
			failed++

			color.New(color.FgRed).Fprintf(out, "FAIL %s\n", path)
			fmt.Fprintf(out, "  %v\n", err)

			continue
		}

		color.New(color.FgGreen).Fprintf(out, "OK   %s", path)
		fmt.Fprintf(out, " (%s, %d classes)\n", model.Language, len(model.Classes()))
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidSnapshot, failed, len(paths))
	}

	return nil
}
