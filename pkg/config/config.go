// Package config loads and validates refminer configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers     = errors.New("detection workers must not be negative")
	ErrInvalidThreshold   = errors.New("threshold must be within [0, 1]")
	ErrInvalidFingerprint = errors.New("fingerprint hashes and shingle size must be positive")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrInvalidSampleRatio = errors.New("sample ratio must be within [0, 1]")
)

const (
	// FileName is the configuration file looked up when no path is given.
	FileName = ".refminer"
	// EnvPrefix prefixes environment overrides, e.g. REFMINER_DETECTION_WORKERS.
	EnvPrefix = "REFMINER"

	// LogFormatText selects the logfmt-style handler.
	LogFormatText = "text"
	// LogFormatJSON selects the JSON handler.
	LogFormatJSON = "json"
)

// Config holds all refminer configuration.
type Config struct {
	Detection DetectionConfig `mapstructure:"detection"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// DetectionConfig tunes candidate matching.
type DetectionConfig struct {
	// Workers bounds parallel matching; 0 means GOMAXPROCS.
	Workers              int     `mapstructure:"workers"`
	ReplacementThreshold float64 `mapstructure:"replacement_threshold"`
	CompositeThreshold   float64 `mapstructure:"composite_threshold"`
	// FingerprintFloor discards candidate pairs whose body fingerprints are
	// less similar before any alignment is computed.
	FingerprintFloor  float64 `mapstructure:"fingerprint_floor"`
	FingerprintHashes int     `mapstructure:"fingerprint_hashes"`
	ShingleSize       int     `mapstructure:"shingle_size"`
}

// SnapshotConfig controls snapshot loading.
type SnapshotConfig struct {
	// Languages lists accepted source languages; empty accepts all.
	Languages      []string `mapstructure:"languages"`
	SkipVendor     bool     `mapstructure:"skip_vendor"`
	ValidateSchema bool     `mapstructure:"validate_schema"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig controls OTLP export.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	Environment  string  `mapstructure:"environment"`
}

// LoadConfig reads configPath, or .refminer.yaml from the working directory
// or the home directory when configPath is empty. A missing implicit file
// yields the defaults. Environment variables override file values.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config

	// Defaults always decode.
	_ = v.Unmarshal(&cfg)

	return &cfg
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	d := c.Detection

	if d.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, d.Workers)
	}

	for name, value := range map[string]float64{
		"replacement_threshold": d.ReplacementThreshold,
		"composite_threshold":   d.CompositeThreshold,
		"fingerprint_floor":     d.FingerprintFloor,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidThreshold, name, value)
		}
	}

	if d.FingerprintHashes <= 0 || d.ShingleSize <= 0 {
		return fmt.Errorf("%w: hashes=%d shingle=%d", ErrInvalidFingerprint, d.FingerprintHashes, d.ShingleSize)
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}

	if f := c.Logging.Format; f != LogFormatText && f != LogFormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, f)
	}

	if r := c.Telemetry.SampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, r)
	}

	return nil
}

// SlogLevel parses the configured level name.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
	}

	return level, nil
}
