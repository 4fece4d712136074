// Package config reads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

var ErrNoDistribution = errors.New("DISTRIBUTION or DISTRIBUTION_PARAM must be set")

type Config struct {
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	Distribution      string `mapstructure:"DISTRIBUTION"`
	DistributionParam string `mapstructure:"DISTRIBUTION_PARAM"`
	Bucket            string `mapstructure:"BUCKET"`
	BasePath          string `mapstructure:"BASE_PATH"`
	Region            string `mapstructure:"AWS_REGION"`
}

// Load builds a Config from environment variables, applying defaults for
// anything unset.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for _, key := range []string{"LOG_LEVEL", "DISTRIBUTION", "DISTRIBUTION_PARAM", "BUCKET", "BASE_PATH", "AWS_REGION"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BASE_PATH", "releases")
	v.SetDefault("AWS_REGION", "us-east-1")
}

// ValidateLambda checks the settings the Lambda entry point cannot run
// without. The CLI receives the distribution as an argument instead.
func (c *Config) ValidateLambda() error {
	if c.Distribution == "" && c.DistributionParam == "" {
		return ErrNoDistribution
	}
	return nil
}
