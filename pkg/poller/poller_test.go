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

package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/xdr-console/pkg/logger"
	"github.com/carverauto/xdr-console/pkg/models"
)

// MockFetcher is a mock implementation of Fetcher.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockFetcher) FetchStats(ctx context.Context) (*models.StatsSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.StatsSnapshot), args.Error(1)
}

func (m *MockFetcher) FetchTimeline(ctx context.Context) ([]models.TimelineBucket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.TimelineBucket), args.Error(1)
}

// fakeClock hands out tickers that all share one manually driven channel.
type fakeClock struct {
	ch chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{ch: make(chan time.Time)}
}

func (*fakeClock) Now() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }

func (f *fakeClock) Ticker(_ time.Duration) Ticker {
	return &fakeTicker{ch: f.ch}
}

type fakeTicker struct {
	ch chan time.Time
}

func (f *fakeTicker) Chan() <-chan time.Time { return f.ch }
func (*fakeTicker) Stop()                    {}

// collectRefresh drains updates until the refresh-settled marker arrives and
// returns every snapshot of that fan-out keyed by source.
func collectRefresh(t *testing.T, p *Poller) map[Source]Snapshot {
	t.Helper()

	got := make(map[Source]Snapshot)

	for {
		select {
		case snap := <-p.Updates():
			got[snap.Source] = snap

			if snap.Source == SourceRefresh {
				return got
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for refresh to settle, have %d snapshots", len(got))
		}
	}
}

func startPoller(t *testing.T, fetcher Fetcher, clock Clock) *Poller {
	t.Helper()

	p := New(&Config{}, fetcher, clock, logger.NewTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = p.Start(ctx) }()

	t.Cleanup(func() { _ = p.Stop(context.Background()) })

	return p
}

func happyFetcher() *MockFetcher {
	fetcher := &MockFetcher{}
	fetcher.On("FetchEvents", mock.Anything).Return([]models.Event{
		{Timestamp: time.Date(2024, 1, 10, 11, 30, 0, 0, time.UTC), Hostname: "web-01", AgentID: "a1"},
	}, nil)
	fetcher.On("FetchStats", mock.Anything).Return(&models.StatsSnapshot{TotalEvents: 42}, nil)
	fetcher.On("FetchTimeline", mock.Anything).Return([]models.TimelineBucket{}, nil)

	return fetcher
}

func TestInitialRefresh(t *testing.T) {
	fetcher := happyFetcher()
	p := startPoller(t, fetcher, newFakeClock())

	got := collectRefresh(t, p)

	require.Len(t, got, 4)
	assert.Len(t, got[SourceEvents].Events, 1)
	assert.Equal(t, 42, got[SourceStats].Stats.TotalEvents)
	assert.NotNil(t, got[SourceTimeline].Timeline)

	// All snapshots of one fan-out share the refresh's sequence number.
	assert.Equal(t, uint64(1), got[SourceEvents].Seq)
	assert.Equal(t, uint64(1), got[SourceStats].Seq)
	assert.Equal(t, uint64(1), got[SourceTimeline].Seq)
	assert.Equal(t, uint64(1), got[SourceRefresh].Seq)
}

func TestTickTriggersRefresh(t *testing.T) {
	fetcher := happyFetcher()
	clock := newFakeClock()
	p := startPoller(t, fetcher, clock)

	collectRefresh(t, p)

	clock.ch <- clock.Now()

	got := collectRefresh(t, p)
	assert.Equal(t, uint64(2), got[SourceRefresh].Seq)

	fetcher.AssertNumberOfCalls(t, "FetchEvents", 2)
}

func TestPartialFailureStillSettles(t *testing.T) {
	statsErr := errors.New("stats backend down")

	fetcher := &MockFetcher{}
	fetcher.On("FetchEvents", mock.Anything).Return([]models.Event{}, nil)
	fetcher.On("FetchStats", mock.Anything).Return(nil, statsErr)
	fetcher.On("FetchTimeline", mock.Anything).Return([]models.TimelineBucket{}, nil)

	p := startPoller(t, fetcher, newFakeClock())

	got := collectRefresh(t, p)

	require.Len(t, got, 4)
	assert.NoError(t, got[SourceEvents].Err)
	assert.ErrorIs(t, got[SourceStats].Err, statsErr)
	assert.NoError(t, got[SourceTimeline].Err)
}

func TestSetAutoRefreshDisableStopsTicks(t *testing.T) {
	fetcher := happyFetcher()
	clock := newFakeClock()
	p := startPoller(t, fetcher, clock)

	collectRefresh(t, p)

	p.SetAutoRefresh(false)

	// Give the loop a moment to apply the toggle, then confirm no refresh
	// shows up: with the ticker detached nothing reads the tick channel.
	time.Sleep(50 * time.Millisecond)

	select {
	case snap := <-p.Updates():
		t.Fatalf("unexpected snapshot after disable: %+v", snap)
	case <-time.After(100 * time.Millisecond):
	}

	p.SetAutoRefresh(true)
	time.Sleep(50 * time.Millisecond)

	clock.ch <- clock.Now()

	got := collectRefresh(t, p)
	assert.Equal(t, uint64(2), got[SourceRefresh].Seq)
}

func TestRefreshNowBypassesTicker(t *testing.T) {
	fetcher := happyFetcher()
	p := startPoller(t, fetcher, newFakeClock())

	collectRefresh(t, p)

	p.RefreshNow(context.Background())

	got := collectRefresh(t, p)
	assert.Equal(t, uint64(2), got[SourceRefresh].Seq)
}
