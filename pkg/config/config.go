/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads console configuration from a JSON file with an
// environment variable overlay.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carverauto/xdr-console/pkg/logger"
	"github.com/carverauto/xdr-console/pkg/models"
)

const (
	defaultEventLimit    = 200
	defaultTimelineHours = 24
	defaultPollInterval  = 10 * time.Second
	defaultHTTPTimeout   = 15 * time.Second
)

var errAPIBaseURLRequired = errors.New("api_base_url is required")

// Config holds the console settings.
type Config struct {
	APIBaseURL    string           `json:"api_base_url"`
	APIKey        string           `json:"api_key,omitempty"`
	EventLimit    int              `json:"event_limit,omitempty"`
	TimelineHours int              `json:"timeline_hours,omitempty"`
	PollInterval  models.Duration  `json:"poll_interval,omitempty"`
	HTTPTimeout   models.Duration  `json:"http_timeout,omitempty"`
	TLSSkipVerify bool             `json:"tls_skip_verify,omitempty"`
	ExportDir     string           `json:"export_dir,omitempty"`
	Logging       *logger.Config   `json:"logging,omitempty"`
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return errAPIBaseURLRequired
	}

	if c.EventLimit <= 0 {
		c.EventLimit = defaultEventLimit
	}

	if c.TimelineHours <= 0 {
		c.TimelineHours = defaultTimelineHours
	}

	if c.PollInterval <= 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = models.Duration(defaultHTTPTimeout)
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}

	return nil
}

// Load reads the config file when path is non-empty, applies the
// XDR_CONSOLE_* environment overlay on top, then validates.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
