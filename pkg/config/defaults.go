package config

import "github.com/spf13/viper"

// Detection defaults.
const (
	DefaultWorkers              = 0
	DefaultReplacementThreshold = 0.5
	DefaultCompositeThreshold   = 0.5
	DefaultFingerprintFloor     = 0.0
	DefaultFingerprintHashes    = 64
	DefaultShingleSize          = 3
)

// Snapshot defaults.
const (
	DefaultSkipVendor     = true
	DefaultValidateSchema = true
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = LogFormatText
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("detection.workers", DefaultWorkers)
	v.SetDefault("detection.replacement_threshold", DefaultReplacementThreshold)
	v.SetDefault("detection.composite_threshold", DefaultCompositeThreshold)
	v.SetDefault("detection.fingerprint_floor", DefaultFingerprintFloor)
	v.SetDefault("detection.fingerprint_hashes", DefaultFingerprintHashes)
	v.SetDefault("detection.shingle_size", DefaultShingleSize)

	v.SetDefault("snapshot.languages", []string{})
	v.SetDefault("snapshot.skip_vendor", DefaultSkipVendor)
	v.SetDefault("snapshot.validate_schema", DefaultValidateSchema)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)

	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.otlp_insecure", false)
	v.SetDefault("telemetry.otlp_headers", "")
	v.SetDefault("telemetry.sample_ratio", 0.0)
	v.SetDefault("telemetry.environment", "")
}
