// Package config provides environment-based configuration for Verdict.
//
// Configuration is loaded from environment variables using Viper, with
// sensible defaults for development. This package covers the relation store
// connection, logging level, audit retention, and telemetry settings of an
// embedding service.
//
// # Environment Variables
//
//   - VERDICT_DSN: Relation store connection string. Default: verdict.db
//   - VERDICT_SKIP_AUTO_MIGRATE: Skip automatic store migrations. Default: false
//   - VERDICT_LOG_LEVEL: Logging level (debug, info, warn, error). Default: info
//   - VERDICT_MAX_TRAVERSAL_DEPTH: Relation graph depth bound. Default: 25
//   - VERDICT_AUDIT_CAPACITY: In-memory audit event retention. Default: 10000
//   - VERDICT_TELEMETRY_ENABLED: Enable metrics and tracing. Default: false
//   - VERDICT_OTLP_ENDPOINT: OTLP trace exporter endpoint. Default: unset
//   - VERDICT_SAMPLING_RATE: Trace sampling rate (0.0-1.0). Default: 1.0
//   - VERDICT_METRICS_PORT: Prometheus scrape port. Default: 9090
//
// # Example Usage
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger.InitLogger(cfg.LogLevel)
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DSN               string  `mapstructure:"DSN"`
	SkipAutoMigrate   bool    `mapstructure:"SKIP_AUTO_MIGRATE"`
	LogLevel          string  `mapstructure:"LOG_LEVEL"`
	MaxTraversalDepth int     `mapstructure:"MAX_TRAVERSAL_DEPTH"`
	AuditCapacity     int     `mapstructure:"AUDIT_CAPACITY"`
	TelemetryEnabled  bool    `mapstructure:"TELEMETRY_ENABLED"`
	OTLPEndpoint      string  `mapstructure:"OTLP_ENDPOINT"`
	SamplingRate      float64 `mapstructure:"SAMPLING_RATE"`
	MetricsPort       int     `mapstructure:"METRICS_PORT"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("DSN", "verdict.db")
	v.SetDefault("SKIP_AUTO_MIGRATE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_TRAVERSAL_DEPTH", 25)
	v.SetDefault("AUDIT_CAPACITY", 10000)
	v.SetDefault("TELEMETRY_ENABLED", false)
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("SAMPLING_RATE", 1.0)
	v.SetDefault("METRICS_PORT", 9090)

	v.SetEnvPrefix("VERDICT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
