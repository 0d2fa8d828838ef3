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

// Package view holds the console's event view model: the raw snapshots, the
// filter criteria, and the derived projection the renderer reads. All
// mutation goes through a single goroutine (the bubbletea update loop), so
// the state carries no locks.
package view

import (
	"time"

	"github.com/carverauto/xdr-console/pkg/logger"
	"github.com/carverauto/xdr-console/pkg/models"
	"github.com/carverauto/xdr-console/pkg/poller"
)

// State is the top-level view model. The renderer reads only from here.
type State struct {
	Events      []models.Event
	Projection  Projection
	Stats       *models.StatsSnapshot
	Timeline    []TimelinePoint
	Loading     bool
	Err         error
	AutoRefresh bool
	Filters     *Filters

	logger  logger.Logger
	loc     *time.Location
	now     func() time.Time
	lastSeq map[poller.Source]uint64
}

// NewState builds an empty view model. loc anchors timeline labels; now
// anchors the projection's date cutoffs. Nil arguments select local time.
func NewState(log logger.Logger, loc *time.Location, now func() time.Time) *State {
	if loc == nil {
		loc = time.Local
	}

	if now == nil {
		now = time.Now
	}

	s := &State{
		Events:      []models.Event{},
		Timeline:    []TimelinePoint{},
		Loading:     true,
		AutoRefresh: true,
		Filters:     NewFilters(),
		logger:      log,
		loc:         loc,
		now:         now,
		lastSeq:     make(map[poller.Source]uint64),
	}

	s.Filters.OnChange(s.reproject)
	s.reproject()

	return s
}

// Apply folds one poller snapshot into the state. It is the only entry point
// for refresh data. Snapshots older than the last applied one for the same
// source are discarded, so a slow response never overwrites a newer one.
func (s *State) Apply(snap poller.Snapshot) {
	if snap.Seq < s.lastSeq[snap.Source] {
		s.logger.Debug().
			Str("source", string(snap.Source)).
			Uint64("seq", snap.Seq).
			Uint64("last", s.lastSeq[snap.Source]).
			Msg("Discarding stale snapshot")

		return
	}

	s.lastSeq[snap.Source] = snap.Seq

	switch snap.Source {
	case poller.SourceEvents:
		if snap.Err != nil {
			// The event table is the primary artifact; its failure is
			// surfaced. Prior events stay visible behind the banner.
			s.Err = snap.Err
			return
		}

		s.Err = nil
		s.Events = snap.Events
		s.reproject()

	case poller.SourceStats:
		if snap.Err == nil {
			s.Stats = snap.Stats
		}
		// Failures were logged by the poller; the stats card keeps its
		// previous value or falls back to zero.

	case poller.SourceTimeline:
		if snap.Err == nil {
			s.Timeline = AggregateTimeline(snap.Timeline, s.loc)
		}

	case poller.SourceRefresh:
		s.Loading = false
	}
}

// SetFilter updates one criteria field; the projection recomputes via the
// filter change signal.
func (s *State) SetFilter(key FilterKey, value string) {
	s.Filters.Set(key, value)
}

// ResetFilters restores the default criteria.
func (s *State) ResetFilters() {
	s.Filters.Reset()
}

// Blocked reports whether the error should replace the whole dashboard: an
// events failure with nothing older to show.
func (s *State) Blocked() bool {
	return s.Err != nil && len(s.Events) == 0
}

func (s *State) reproject() {
	s.Projection = Project(s.Events, s.Filters, s.now())
}
