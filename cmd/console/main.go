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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carverauto/xdr-console/pkg/api"
	"github.com/carverauto/xdr-console/pkg/config"
	"github.com/carverauto/xdr-console/pkg/logger"
	"github.com/carverauto/xdr-console/pkg/poller"
	"github.com/carverauto/xdr-console/pkg/tui"
	"github.com/carverauto/xdr-console/pkg/view"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to console config file (JSON)")
	apiURL := flag.String("api-url", "", "Gateway base URL (overrides config file and environment)")
	flag.Parse()

	ctx := context.Background()

	// Step 1: Load configuration
	cfg, err := loadConfig(*configPath, *apiURL)
	if err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	// Step 2: Create logger from loaded config. The dashboard owns the
	// terminal, so point logging.output at a file when running interactively.
	logCfg := cfg.Logging
	if logCfg == nil {
		logCfg = logger.DefaultConfig()
	}

	if err := logger.Init(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger := logger.NewLogger()

	// Step 3: Gateway client
	client, err := api.NewClient(api.ClientConfig{
		BaseURL:       cfg.APIBaseURL,
		APIKey:        cfg.APIKey,
		Timeout:       time.Duration(cfg.HTTPTimeout),
		EventLimit:    cfg.EventLimit,
		TimelineHours: cfg.TimelineHours,
		TLSSkipVerify: cfg.TLSSkipVerify,
		Logger:        appLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	// Step 4: Poller
	p := poller.New(&poller.Config{Interval: cfg.PollInterval}, client, nil, appLogger)

	go func() {
		if err := p.Start(ctx); err != nil {
			appLogger.Error().Err(err).Msg("Poller stopped")
		}
	}()

	defer func() {
		if err := p.Stop(ctx); err != nil {
			appLogger.Error().Err(err).Msg("Poller shutdown error")
		}
	}()

	// Step 5: View model and dashboard
	state := view.NewState(appLogger, time.Local, time.Now)
	model := tui.New(ctx, state, p, cfg.ExportDir, time.Now)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	return nil
}

func loadConfig(path, apiURL string) (*config.Config, error) {
	if apiURL != "" {
		// The env overlay inside Load applies after the file, so routing
		// the flag through the environment keeps one precedence chain.
		if err := os.Setenv("XDR_CONSOLE_API_BASE_URL", apiURL); err != nil {
			return nil, err
		}
	}

	return config.Load(path)
}
