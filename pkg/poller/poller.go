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

// Package poller keeps the console's three data sources fresh. A wall-clock
// ticker drives periodic refreshes; each refresh fans the three gateway
// fetches out concurrently and reports every result as a Snapshot on the
// updates channel. Overlapping refreshes are permitted: a slow gateway does
// not block the next tick, and snapshots carry a sequence number so the
// consumer can discard responses that resolve out of order.
package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/xdr-console/pkg/logger"
	"github.com/carverauto/xdr-console/pkg/models"
)

const (
	defaultInterval = 10 * time.Second
	updatesBuffer   = 16
)

// Source identifies which data source a Snapshot refreshes.
type Source string

const (
	SourceEvents   Source = "events"
	SourceStats    Source = "stats"
	SourceTimeline Source = "timeline"

	// SourceRefresh marks the settling of a whole fan-out: all three
	// fetches of one refresh have resolved, successfully or not. The view
	// uses the first one to clear its initial loading state.
	SourceRefresh Source = "refresh"
)

// Snapshot is one resolved fetch. Exactly one of Events, Stats, Timeline is
// set on success, matching Source; Err is set on failure. Seq is assigned
// when the owning refresh starts, so a response from an older refresh always
// carries a lower Seq than one from a newer refresh.
type Snapshot struct {
	Source   Source
	Seq      uint64
	Events   []models.Event
	Stats    *models.StatsSnapshot
	Timeline []models.TimelineBucket
	Err      error
}

// Config holds the poller settings.
type Config struct {
	Interval models.Duration `json:"interval"`
}

// Poller drives periodic refreshes of the gateway data sources.
type Poller struct {
	fetcher   Fetcher
	interval  time.Duration
	clock     Clock
	logger    logger.Logger
	ticker    Ticker
	updates   chan Snapshot
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	toggleCh  chan bool
	seq       atomic.Uint64
}

// New creates a poller. A nil clock selects the real clock.
func New(config *Config, fetcher Fetcher, clock Clock, log logger.Logger) *Poller {
	if clock == nil {
		clock = realClock{}
	}

	interval := time.Duration(config.Interval)
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		clock:    clock,
		logger:   log,
		updates:  make(chan Snapshot, updatesBuffer),
		done:     make(chan struct{}),
		toggleCh: make(chan bool, 1),
	}
}

// Updates returns the channel snapshots are delivered on.
func (p *Poller) Updates() <-chan Snapshot {
	return p.updates
}

// Start runs the refresh loop until ctx is canceled or Stop is called. One
// refresh fires immediately for the initial load; auto-refresh starts
// enabled.
func (p *Poller) Start(ctx context.Context) error {
	p.ticker = p.clock.Ticker(p.interval)
	tickCh := p.ticker.Chan()

	defer func() {
		if p.ticker != nil {
			p.ticker.Stop()
		}
	}()

	p.logger.Info().Dur("interval", p.interval).Msg("Starting refresh loop")

	p.spawnRefresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return nil
		case <-tickCh:
			p.spawnRefresh(ctx)
		case enabled := <-p.toggleCh:
			if enabled == (tickCh != nil) {
				continue
			}

			if enabled {
				p.ticker = p.clock.Ticker(p.interval)
				tickCh = p.ticker.Chan()
			} else {
				p.ticker.Stop()
				tickCh = nil
			}

			p.logger.Info().Bool("enabled", enabled).Msg("Auto-refresh toggled")
		}
	}
}

// Stop ends the refresh loop and waits for in-flight refreshes to settle.
func (p *Poller) Stop(_ context.Context) error {
	p.closeOnce.Do(func() {
		close(p.done)
	})

	p.wg.Wait()

	return nil
}

// RefreshNow initiates one fan-out without waiting for the next tick. It
// returns immediately; results arrive on the updates channel.
func (p *Poller) RefreshNow(ctx context.Context) {
	p.spawnRefresh(ctx)
}

// SetAutoRefresh toggles the periodic trigger. Disabling cancels the pending
// tick but never cancels in-flight requests.
func (p *Poller) SetAutoRefresh(enabled bool) {
	select {
	case p.toggleCh <- enabled:
	default:
		// A toggle is already pending; the loop applies the latest state
		// next iteration, and a same-state duplicate is ignored there.
		select {
		case <-p.toggleCh:
		default:
		}
		p.toggleCh <- enabled
	}
}

func (p *Poller) spawnRefresh(ctx context.Context) {
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		p.refresh(ctx)
	}()
}

// refresh fans out the three fetches concurrently and settles when all of
// them have resolved, not when the first fails.
func (p *Poller) refresh(ctx context.Context) {
	seq := p.seq.Add(1)
	refreshID := uuid.New().String()

	p.logger.Debug().
		Str("refresh_id", refreshID).
		Uint64("seq", seq).
		Msg("Refresh started")

	var wg sync.WaitGroup

	wg.Add(3)

	go func() {
		defer wg.Done()

		events, err := p.fetcher.FetchEvents(ctx)
		if err != nil {
			p.logger.Error().Err(err).Str("refresh_id", refreshID).Msg("Events fetch failed")
		}

		p.emit(Snapshot{Source: SourceEvents, Seq: seq, Events: events, Err: err})
	}()

	go func() {
		defer wg.Done()

		stats, err := p.fetcher.FetchStats(ctx)
		if err != nil {
			p.logger.Warn().Err(err).Str("refresh_id", refreshID).Msg("Stats fetch failed")
		}

		p.emit(Snapshot{Source: SourceStats, Seq: seq, Stats: stats, Err: err})
	}()

	go func() {
		defer wg.Done()

		timeline, err := p.fetcher.FetchTimeline(ctx)
		if err != nil {
			p.logger.Warn().Err(err).Str("refresh_id", refreshID).Msg("Timeline fetch failed")
		}

		p.emit(Snapshot{Source: SourceTimeline, Seq: seq, Timeline: timeline, Err: err})
	}()

	wg.Wait()

	p.emit(Snapshot{Source: SourceRefresh, Seq: seq})

	p.logger.Debug().
		Str("refresh_id", refreshID).
		Uint64("seq", seq).
		Msg("Refresh settled")
}

func (p *Poller) emit(snap Snapshot) {
	select {
	case p.updates <- snap:
	case <-p.done:
	}
}
