package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/refminer/pkg/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".refminer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultWorkers, cfg.Detection.Workers)
	assert.InDelta(t, config.DefaultReplacementThreshold, cfg.Detection.ReplacementThreshold, 1e-9)
	assert.InDelta(t, config.DefaultCompositeThreshold, cfg.Detection.CompositeThreshold, 1e-9)
	assert.Equal(t, config.DefaultFingerprintHashes, cfg.Detection.FingerprintHashes)
	assert.Equal(t, config.DefaultShingleSize, cfg.Detection.ShingleSize)
	assert.True(t, cfg.Snapshot.SkipVendor)
	assert.True(t, cfg.Snapshot.ValidateSchema)
	assert.Empty(t, cfg.Snapshot.Languages)
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, config.LogFormatText, cfg.Logging.Format)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)

	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_FileValues(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, `
detection:
  workers: 4
  replacement_threshold: 0.7
  fingerprint_floor: 0.2
snapshot:
  languages: [Kotlin, Java]
  skip_vendor: false
logging:
  level: debug
  format: json
telemetry:
  otlp_endpoint: localhost:4317
  otlp_headers: "x-token=abc"
`))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Detection.Workers)
	assert.InDelta(t, 0.7, cfg.Detection.ReplacementThreshold, 1e-9)
	assert.InDelta(t, 0.2, cfg.Detection.FingerprintFloor, 1e-9)
	assert.Equal(t, []string{"Kotlin", "Java"}, cfg.Snapshot.Languages)
	assert.False(t, cfg.Snapshot.SkipVendor)
	assert.Equal(t, config.LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)

	level, err := cfg.Logging.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("REFMINER_DETECTION_WORKERS", "3")
	t.Setenv("REFMINER_LOGGING_FORMAT", "json")

	cfg, err := config.LoadConfig(writeConfig(t, "detection:\n  workers: 8\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Detection.Workers)
	assert.Equal(t, config.LogFormatJSON, cfg.Logging.Format)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want error
	}{
		{"negative workers", "detection:\n  workers: -1\n", config.ErrInvalidWorkers},
		{"threshold above one", "detection:\n  replacement_threshold: 1.5\n", config.ErrInvalidThreshold},
		{"zero hashes", "detection:\n  fingerprint_hashes: 0\n", config.ErrInvalidFingerprint},
		{"bad level", "logging:\n  level: loud\n", config.ErrInvalidLogLevel},
		{"bad format", "logging:\n  format: xml\n", config.ErrInvalidLogFormat},
		{"bad ratio", "telemetry:\n  sample_ratio: 2\n", config.ErrInvalidSampleRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.body))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "detection: [unclosed\n"))
	require.Error(t, err)
}
