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

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/carverauto/xdr-console/pkg/models"
)

// envPrefix namespaces every console environment variable. Variable names
// follow the JSON field names uppercased, e.g. XDR_CONSOLE_API_BASE_URL.
const envPrefix = "XDR_CONSOLE_"

// loadFile reads and unmarshals a JSON config file.
func loadFile(path string, dst *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	err = json.Unmarshal(data, dst)
	if err != nil {
		return fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	return nil
}

// applyEnv overlays set environment variables onto cfg. Unset variables leave
// the existing value alone; unparseable ones are ignored the same way the
// file loader treats absent optional fields.
func applyEnv(cfg *Config) {
	if v := os.Getenv(envPrefix + "API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}

	if v := os.Getenv(envPrefix + "API_KEY"); v != "" {
		cfg.APIKey = v
	}

	if v := os.Getenv(envPrefix + "EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}

	if v := os.Getenv(envPrefix + "EVENT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EventLimit = n
		}
	}

	if v := os.Getenv(envPrefix + "TIMELINE_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimelineHours = n
		}
	}

	if v := os.Getenv(envPrefix + "POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PollInterval = models.Duration(d)
		}
	}

	if v := os.Getenv(envPrefix + "HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = models.Duration(d)
		}
	}

	if v := os.Getenv(envPrefix + "TLS_SKIP_VERIFY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.TLSSkipVerify = b
		}
	}
}
