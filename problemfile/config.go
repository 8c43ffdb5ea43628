// SPDX-License-Identifier: MIT

package problemfile

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/katalvlaran/exactlp/mip"
	"github.com/katalvlaran/exactlp/pip"
)

// EnvPrefix prefixes the environment variables read by NewViper:
// EXACTLP_PRICING, EXACTLP_STALL_THRESHOLD and so on.
const EnvPrefix = "EXACTLP"

// Configuration keys.
const (
	KeyPricing          = "pricing"
	KeyStallThreshold   = "stall_threshold"
	KeyCuttingStrategy  = "cutting_strategy"
	KeyPivotRowStrategy = "pivot_row_strategy"
	KeyTimeout          = "timeout"
	KeyVerbosity        = "verbosity"
)

// Config carries the solver knobs. A zero Timeout means no deadline.
type Config struct {
	Pricing          string        `mapstructure:"pricing"`
	StallThreshold   int           `mapstructure:"stall_threshold"`
	CuttingStrategy  string        `mapstructure:"cutting_strategy"`
	PivotRowStrategy string        `mapstructure:"pivot_row_strategy"`
	Timeout          time.Duration `mapstructure:"timeout"`
	Verbosity        int           `mapstructure:"verbosity"`
}

// NewViper returns a viper instance holding the solver defaults and
// reading EXACTLP_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPricing, mip.DefaultPricing.String())
	v.SetDefault(KeyStallThreshold, mip.DefaultStallThreshold)
	v.SetDefault(KeyCuttingStrategy, pip.DefaultCuttingStrategy.String())
	v.SetDefault(KeyPivotRowStrategy, pip.DefaultPivotRowStrategy.String())
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyVerbosity, 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig merges the configuration file at path (when not empty) into v
// and decodes the result. Every value is validated.
func LoadConfig(v *viper.Viper, path string) (Config, error) {
	var cfg Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("problemfile: read config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks every field against its declared set.
func (c Config) Validate() error {
	if _, err := mip.ParsePricing(c.Pricing); err != nil {
		return fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if c.StallThreshold <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrBadConfig, KeyStallThreshold, c.StallThreshold)
	}
	if _, err := pip.ParseCuttingStrategy(c.CuttingStrategy); err != nil {
		return fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if _, err := pip.ParsePivotRowStrategy(c.PivotRowStrategy); err != nil {
		return fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative %s %v", ErrBadConfig, KeyTimeout, c.Timeout)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("%w: negative %s %d", ErrBadConfig, KeyVerbosity, c.Verbosity)
	}

	return nil
}

// MIPOptions translates the configuration into mip options.
func (c Config) MIPOptions() ([]mip.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rule, _ := mip.ParsePricing(c.Pricing)

	return []mip.Option{mip.WithPricing(rule), mip.WithStallThreshold(c.StallThreshold)}, nil
}

// PIPOptions translates the configuration into pip options.
func (c Config) PIPOptions() ([]pip.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cut, _ := pip.ParseCuttingStrategy(c.CuttingStrategy)
	row, _ := pip.ParsePivotRowStrategy(c.PivotRowStrategy)

	return []pip.Option{pip.WithCuttingStrategy(cut), pip.WithPivotRowStrategy(row)}, nil
}
