// Package commands implements CLI command handlers for refminer.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/refminer/pkg/config"
	"github.com/Sumatoshi-tech/refminer/pkg/diff"
	"github.com/Sumatoshi-tech/refminer/pkg/mapper"
	"github.com/Sumatoshi-tech/refminer/pkg/observability"
	"github.com/Sumatoshi-tech/refminer/pkg/report"
	"github.com/Sumatoshi-tech/refminer/pkg/snapshot"
	"github.com/Sumatoshi-tech/refminer/pkg/version"
)

// DetectCommand holds the flags of the detect command.
type DetectCommand struct {
	format     string
	output     string
	configPath string
	workers    int
	noColor    bool
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	dc := &DetectCommand{}

	cmd := &cobra.Command{
		Use:   "detect <before> <after>",
		Short: "Detect refactorings between two snapshots",
		Long: `Load the before and after snapshots, match their operations and
report the refactorings found.

Examples:
  refminer detect before.yaml after.yaml
  refminer detect --format json --output refactorings.json before.yaml after.yaml`,
		Args: cobra.ExactArgs(2), //nolint:mnd // before and after.
		RunE: dc.run,
	}

	cmd.Flags().StringVar(&dc.format, "format", report.FormatText, "Output format: text, json, yaml")
	cmd.Flags().StringVarP(&dc.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&dc.configPath, "config", "", "Config file (default: .refminer.yaml in . or $HOME)")
	cmd.Flags().IntVar(&dc.workers, "workers", -1, "Number of parallel workers (0 = use CPU count; default from config)")
	cmd.Flags().BoolVar(&dc.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (dc *DetectCommand) run(cmd *cobra.Command, args []string) (err error) {
	cfg, err := config.LoadConfig(dc.configPath)
	if err != nil {
		return err
	}

	if dc.workers >= 0 {
		cfg.Detection.Workers = dc.workers
	}

	providers, err := initObservability(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, providers.Shutdown(context.Background()))
	}()

	metrics, err := observability.NewDetectionMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("create detection metrics: %w", err)
	}

	loadOpts := snapshotOptions(cfg)

	before, err := snapshot.Load(args[0], loadOpts)
	if err != nil {
		return fmt.Errorf("load before snapshot: %w", err)
	}

	after, err := snapshot.Load(args[1], loadOpts)
	if err != nil {
		return fmt.Errorf("load after snapshot: %w", err)
	}

	detector := diff.NewDetector(diff.Options{
		Workers: cfg.Detection.Workers,
		Mapper: mapper.Options{
			ReplacementThreshold: cfg.Detection.ReplacementThreshold,
			CompositeThreshold:   cfg.Detection.CompositeThreshold,
		},
		FingerprintFloor:  cfg.Detection.FingerprintFloor,
		FingerprintHashes: cfg.Detection.FingerprintHashes,
		ShingleSize:       cfg.Detection.ShingleSize,
		Logger:            providers.Logger,
		Tracer:            providers.Tracer,
		Metrics:           metrics,
	})

	refactorings, err := detector.Detect(cmd.Context(), before, after)
	if err != nil {
		return fmt.Errorf("detect refactorings: %w", err)
	}

	return dc.write(cmd.OutOrStdout(), func(w io.Writer) error {
		return report.Render(w, dc.format, refactorings)
	})
}

func (dc *DetectCommand) write(stdout io.Writer, render func(io.Writer) error) error {
	if dc.noColor || dc.output != "" {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	if dc.output == "" {
		return render(stdout)
	}

	f, err := os.Create(dc.output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := render(f); err != nil {
		return errors.Join(err, f.Close())
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	return nil
}

func snapshotOptions(cfg *config.Config) snapshot.Options {
	return snapshot.Options{
		ValidateSchema: cfg.Snapshot.ValidateSchema,
		Languages:      cfg.Snapshot.Languages,
		SkipVendor:     cfg.Snapshot.SkipVendor,
	}
}

func initObservability(cfg *config.Config, logOut io.Writer) (observability.Providers, error) {
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return observability.Providers{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.Format == config.LogFormatJSON

	providers, err := observability.InitWithWriter(obsCfg, logOut)
	if err != nil {
		return observability.Providers{}, fmt.Errorf("init observability: %w", err)
	}

	return providers, nil
}
