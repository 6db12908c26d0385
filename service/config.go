// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"fmt"
	"math"

	"github.com/mattermost/spcd/logger"
	"github.com/mattermost/spcd/service/api"
	"github.com/mattermost/spcd/service/auth"
)

type SecurityConfig struct {
	// Whether or not requests need to be authenticated.
	EnableAuth bool `toml:"enable_auth" split_words:"true"`
	// The secret key clients authenticate with. Only its hash is kept once
	// the service has started.
	SecretKey    string                  `toml:"secret_key" split_words:"true"`
	SessionCache auth.SessionCacheConfig `toml:"session_cache" split_words:"true"`
}

func (c SecurityConfig) IsValid() error {
	if !c.EnableAuth {
		return nil
	}

	if c.SecretKey == "" {
		return fmt.Errorf("invalid SecretKey value: should not be empty")
	}

	if len(c.SecretKey) < auth.MinKeyLen {
		return fmt.Errorf("invalid SecretKey value: should be at least %d characters long", auth.MinKeyLen)
	}

	if err := c.SessionCache.IsValid(); err != nil {
		return fmt.Errorf("invalid SessionCache config: %w", err)
	}

	return nil
}

type APIConfig struct {
	HTTP     api.Config     `toml:"http"`
	Security SecurityConfig `toml:"security"`
}

func (c APIConfig) IsValid() error {
	if err := c.Security.IsValid(); err != nil {
		return fmt.Errorf("failed to validate security config: %w", err)
	}

	if err := c.HTTP.IsValid(); err != nil {
		return fmt.Errorf("failed to validate http config: %w", err)
	}

	return nil
}

type StatsConfig struct {
	// Maximum number of samples accepted in a single request.
	MaxSamples int `toml:"max_samples" split_words:"true"`
	// Maximum number of histogram bins a request can ask for.
	MaxBins int `toml:"max_bins" split_words:"true"`
	// Number of decimal digits Pearson coefficients are rounded to.
	PearsonPrecision int `toml:"pearson_precision" split_words:"true"`
	// Sentinel values dropped from requests that don't set their own
	// exclude list, e.g. -99.0 for missing measurements.
	DefaultExclude []float64 `toml:"default_exclude" split_words:"true"`
}

func (c StatsConfig) IsValid() error {
	if c.MaxSamples <= 0 {
		return fmt.Errorf("invalid MaxSamples value: should be a positive number")
	}
	if c.MaxBins <= 0 {
		return fmt.Errorf("invalid MaxBins value: should be a positive number")
	}
	if c.PearsonPrecision < 0 {
		return fmt.Errorf("invalid PearsonPrecision value: should not be negative")
	}
	for _, v := range c.DefaultExclude {
		if math.IsNaN(v) {
			return fmt.Errorf("invalid DefaultExclude value: NaN can't be matched")
		}
	}
	return nil
}

type Config struct {
	API    APIConfig
	Stats  StatsConfig
	Logger logger.Config
}

func (c Config) IsValid() error {
	if err := c.API.IsValid(); err != nil {
		return err
	}

	if err := c.Stats.IsValid(); err != nil {
		return fmt.Errorf("failed to validate stats config: %w", err)
	}

	return c.Logger.IsValid()
}

func (c *Config) SetDefaults() {
	c.API.HTTP.ListenAddress = ":8045"
	c.API.HTTP.MaxBodySize = 32 * 1024 * 1024
	c.API.Security.SessionCache.ExpirationMinutes = 1440
	c.Stats.MaxSamples = 1_000_000
	c.Stats.MaxBins = 10_000
	c.Logger.EnableConsole = true
	c.Logger.ConsoleJSON = false
	c.Logger.ConsoleLevel = "INFO"
	c.Logger.EnableFile = true
	c.Logger.FileJSON = true
	c.Logger.FileLocation = "spcd.log"
	c.Logger.FileLevel = "DEBUG"
	c.Logger.EnableColor = false
}
