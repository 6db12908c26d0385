// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package api

import (
	"crypto/tls"
	"fmt"
)

type TLSConfig struct {
	Enable   bool
	CertFile string `toml:"cert_file"`
	CertKey  string `toml:"cert_key"`
}

func (c TLSConfig) IsValid() error {
	if c.Enable {
		if c.CertFile == "" {
			return fmt.Errorf("invalid CertFile value: should not be empty")
		}

		if c.CertKey == "" {
			return fmt.Errorf("invalid CertKey value: should not be empty")
		}

		if _, err := tls.LoadX509KeyPair(c.CertFile, c.CertKey); err != nil {
			return fmt.Errorf("failed to load cert files: %w", err)
		}
	}
	return nil
}

type Config struct {
	ListenAddress string `toml:"listen_address"`
	TLS           TLSConfig
	// Maximum accepted request body size in bytes. Zero means unlimited.
	MaxBodySize int64 `toml:"max_body_size" split_words:"true"`
	// Sustained number of requests per second accepted across all clients.
	// Zero disables rate limiting.
	RateLimit float64 `toml:"rate_limit" split_words:"true"`
	RateBurst int     `toml:"rate_burst" split_words:"true"`
}

func (c Config) IsValid() error {
	if c.ListenAddress == "" {
		return fmt.Errorf("invalid ListenAddress value: should not be empty")
	}
	if c.MaxBodySize < 0 {
		return fmt.Errorf("invalid MaxBodySize value: should not be negative")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid RateLimit value: should not be negative")
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		return fmt.Errorf("invalid RateBurst value: should be a positive number")
	}
	if err := c.TLS.IsValid(); err != nil {
		return fmt.Errorf("invalid TLS config: %w", err)
	}
	return nil
}
