// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings of the QR code service.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is the service configuration.
type Config struct {
	Addr        string // listen address
	DefaultSize int    // image size when the request has none
	MaxSize     int    // largest image size accepted
	MaxData     int64  // largest request body or text, in bytes
	GinMode     string // gin.DebugMode, gin.ReleaseMode or gin.TestMode
}

// Load reads the configuration from QRGEN_* environment variables,
// using defaults for those unset or empty.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:        env("QRGEN_ADDR", ":8080"),
		GinMode:     env("QRGEN_GIN_MODE", "release"),
		DefaultSize: 256,
		MaxSize:     4096,
		MaxData:     4096,
	}
	for _, v := range []struct {
		name string
		p    *int
	}{
		{"QRGEN_DEFAULT_SIZE", &cfg.DefaultSize},
		{"QRGEN_MAX_SIZE", &cfg.MaxSize},
	} {
		if err := envInt(v.name, v.p); err != nil {
			return nil, err
		}
	}
	maxData := int(cfg.MaxData)
	if err := envInt("QRGEN_MAX_DATA", &maxData); err != nil {
		return nil, err
	}
	cfg.MaxData = int64(maxData)
	if cfg.DefaultSize > cfg.MaxSize {
		return nil, fmt.Errorf("config: QRGEN_DEFAULT_SIZE %d exceeds QRGEN_MAX_SIZE %d",
			cfg.DefaultSize, cfg.MaxSize)
	}
	return cfg, nil
}

func env(name, def string) string {
	if s := os.Getenv(name); s != "" {
		return s
	}
	return def
}

// envInt sets *p from a positive integer variable.
func envInt(name string, p *int) error {
	s := os.Getenv(name)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("config: %s: %w", name, err)
	}
	if n <= 0 {
		return fmt.Errorf("config: %s: %d is not positive", name, n)
	}
	*p = n
	return nil
}
