// Package config loads projector configuration from command-line flags
// with environment-variable fallbacks, and the queue mapping file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// Config holds application configuration. Every field has a flag and an
// environment variable; the flag wins when both are set.
type Config struct {
	// Broker
	RabbitURI               string
	RabbitConsumerTagSuffix string

	// Relation store
	AuthzedEndpoint string
	AuthzedToken    string

	// Queue mapping
	QueueConfigPath string

	// Observability
	MetricsAddr string // empty disables the metrics listener
	Env         string // "development" or "production"
}

// Load parses args (excluding the program name) over environment defaults.
// It returns an error for unknown flags; all parse errors are reported at
// once.
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("projector", flag.ContinueOnError)
	fs.StringVar(&cfg.RabbitURI, "rabbit-uri", envStr("RABBIT_URI", "localhost"), "AMQP broker URI")
	fs.StringVar(&cfg.RabbitConsumerTagSuffix, "rabbit-consumer-tag-suffix", envStr("RABBIT_CONSUMER_TAG_SUFFIX", "default"), "suffix appended to per-queue consumer tags")
	fs.StringVar(&cfg.AuthzedEndpoint, "authzed-endpoint", envStr("AUTHZED_ENDPOINT", "localhost:50051"), "relation store host:port")
	fs.StringVar(&cfg.AuthzedToken, "authzed-token", envStr("AUTHZED_TOKEN", ""), "relation store bearer token; empty disables auth")
	fs.StringVar(&cfg.QueueConfigPath, "queue-config-path", envStr("QUEUE_CONFIG_PATH", "config/queues.json"), "path to the queue mapping JSON file")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", envStr("METRICS_ADDR", ""), "listen address for /metrics; empty disables")
	fs.StringVar(&cfg.Env, "env", envStr("PROJECTOR_ENV", "production"), `"development" or "production"`)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment returns true when running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) validate() error {
	var errs []error

	if c.RabbitURI == "" {
		errs = append(errs, fmt.Errorf("RABBIT_URI must not be empty"))
	}
	if c.RabbitConsumerTagSuffix == "" {
		errs = append(errs, fmt.Errorf("RABBIT_CONSUMER_TAG_SUFFIX must not be empty"))
	}
	if c.AuthzedEndpoint == "" {
		errs = append(errs, fmt.Errorf("AUTHZED_ENDPOINT must not be empty"))
	}
	if c.QueueConfigPath == "" {
		errs = append(errs, fmt.Errorf("QUEUE_CONFIG_PATH must not be empty"))
	}
	if c.Env != "development" && c.Env != "production" {
		errs = append(errs, fmt.Errorf("PROJECTOR_ENV must be %q or %q, got %q", "development", "production", c.Env))
	}

	return errors.Join(errs...)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
