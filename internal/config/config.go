// Package config loads dashboard settings from defaults, a .env file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kurtsley/nanoterm/internal/frame"
	"github.com/kurtsley/nanoterm/internal/quote"
)

// EnvPrefix prefixes every environment variable, e.g. NANOTERM_TICK.
const EnvPrefix = "NANOTERM"

// Config holds all dashboard settings.
type Config struct {
	Endpoint     string        `mapstructure:"endpoint" validate:"required,url"`
	Tick         time.Duration `mapstructure:"tick" validate:"gt=0"`
	FetchTimeout time.Duration `mapstructure:"fetch-timeout" validate:"gte=0"`
	Retries      int           `mapstructure:"retries" validate:"gte=0,lte=10"`
	RetryMin     time.Duration `mapstructure:"retry-min" validate:"gt=0"`
	RetryMax     time.Duration `mapstructure:"retry-max" validate:"gtefield=RetryMin"`
	MaxFailures  int           `mapstructure:"max-failures" validate:"gte=0"`
	Serial       bool          `mapstructure:"serial"`

	PriceDecimals       uint `mapstructure:"price-decimals" validate:"lte=12"`
	PositiveDecimals    uint `mapstructure:"positive-decimals" validate:"lte=12"`
	NonPositiveDecimals uint `mapstructure:"nonpositive-decimals" validate:"lte=12"`
	PositivePrefix      bool `mapstructure:"positive-prefix"`

	LogFile     string `mapstructure:"log-file"`
	LogLevel    string `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	MetricsAddr string `mapstructure:"metrics-addr" validate:"omitempty,hostname_port"`
}

// Format returns the number formatting settings.
func (c *Config) Format() frame.Format {
	return frame.Format{
		PriceDecimals:       c.PriceDecimals,
		PositiveDecimals:    c.PositiveDecimals,
		NonPositiveDecimals: c.NonPositiveDecimals,
		PositivePrefix:      c.PositivePrefix,
	}
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Config {
	return Config{
		Endpoint:            quote.DefaultEndpoint,
		Tick:                5 * time.Second,
		FetchTimeout:        10 * time.Second,
		Retries:             2,
		RetryMin:            time.Second,
		RetryMax:            30 * time.Second,
		PriceDecimals:       frame.DefaultFormat.PriceDecimals,
		PositiveDecimals:    frame.DefaultFormat.PositiveDecimals,
		NonPositiveDecimals: frame.DefaultFormat.NonPositiveDecimals,
		PositivePrefix:      frame.DefaultFormat.PositivePrefix,
		LogLevel:            "info",
	}
}

// RegisterFlags adds one flag per setting to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String("endpoint", d.Endpoint, "URL serving the quote JSON")
	fs.Duration("tick", d.Tick, "Interval between refreshes")
	fs.Duration("fetch-timeout", d.FetchTimeout, "Timeout for one HTTP request (0 = none)")
	fs.Int("retries", d.Retries, "HTTP retries within one fetch")
	fs.Duration("retry-min", d.RetryMin, "First wait after a failed fetch")
	fs.Duration("retry-max", d.RetryMax, "Longest wait between failed fetches")
	fs.Int("max-failures", d.MaxFailures, "Exit after this many consecutive failed fetches (0 = never)")
	fs.Bool("serial", d.Serial, "Fetch inside the redraw loop instead of in the background")
	fs.Uint("price-decimals", d.PriceDecimals, "Digits after the point for the price")
	fs.Uint("positive-decimals", d.PositiveDecimals, "Digits after the point for positive changes")
	fs.Uint("nonpositive-decimals", d.NonPositiveDecimals, "Digits after the point for zero and negative changes")
	fs.Bool("positive-prefix", d.PositivePrefix, "Prefix positive changes with +")
	fs.String("log-file", d.LogFile, "Write logs to this file")
	fs.String("log-level", d.LogLevel, "Log level: debug, info, warn, error")
	fs.String("metrics-addr", d.MetricsAddr, "Serve Prometheus metrics on this host:port")
}

// Load resolves the settings. envFiles are read with godotenv before the
// environment is consulted; missing files are ignored. Flags in fs that were
// set explicitly win over everything else.
func Load(fs *pflag.FlagSet, envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		// A missing .env file is the normal case.
		_ = godotenv.Load(f)
	}

	v := viper.New()
	d := Defaults()
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("tick", d.Tick)
	v.SetDefault("fetch-timeout", d.FetchTimeout)
	v.SetDefault("retries", d.Retries)
	v.SetDefault("retry-min", d.RetryMin)
	v.SetDefault("retry-max", d.RetryMax)
	v.SetDefault("max-failures", d.MaxFailures)
	v.SetDefault("serial", d.Serial)
	v.SetDefault("price-decimals", d.PriceDecimals)
	v.SetDefault("positive-decimals", d.PositiveDecimals)
	v.SetDefault("nonpositive-decimals", d.NonPositiveDecimals)
	v.SetDefault("positive-prefix", d.PositivePrefix)
	v.SetDefault("log-file", d.LogFile)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("metrics-addr", d.MetricsAddr)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks cfg and reports every bad field at once.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
