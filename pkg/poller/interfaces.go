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
	"time"

	"github.com/carverauto/xdr-console/pkg/models"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts time.Ticker so tests can fire ticks manually.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// Fetcher is the gateway surface the poller drives. Implemented by
// api.Client.
type Fetcher interface {
	FetchEvents(ctx context.Context) ([]models.Event, error)
	FetchStats(ctx context.Context) (*models.StatsSnapshot, error)
	FetchTimeline(ctx context.Context) ([]models.TimelineBucket, error)
}
