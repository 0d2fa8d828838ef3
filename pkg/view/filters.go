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

package view

import "time"

// DateRange is the relative time window a user can filter on.
type DateRange string

const (
	RangeHour  DateRange = "1h"
	RangeSixH  DateRange = "6h"
	RangeDay   DateRange = "24h"
	RangeWeek  DateRange = "7d"
	RangeMonth DateRange = "30d"

	// DefaultDateRange is the window applied when no range is selected.
	DefaultDateRange = RangeDay
)

// DateRanges lists the selectable windows in ascending width.
var DateRanges = []DateRange{RangeHour, RangeSixH, RangeDay, RangeWeek, RangeMonth}

// Duration returns the window width. Unknown ranges fall back to 24 hours,
// the default bucket.
func (r DateRange) Duration() time.Duration {
	switch r {
	case RangeHour:
		return time.Hour
	case RangeSixH:
		return 6 * time.Hour
	case RangeDay:
		return 24 * time.Hour
	case RangeWeek:
		return 7 * 24 * time.Hour
	case RangeMonth:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// FilterKey names one criteria field for the keyed setter.
type FilterKey string

const (
	FilterEventType FilterKey = "eventType"
	FilterSeverity  FilterKey = "severity"
	FilterHostname  FilterKey = "hostname"
	FilterSearch    FilterKey = "searchQuery"
	FilterDateRange FilterKey = "dateRange"
)

// Filters holds the user-selected criteria. Free-text fields accept any
// string; empty means no constraint. The zero value is not ready to use,
// construct with NewFilters.
type Filters struct {
	EventType   string
	Severity    string
	Hostname    string
	SearchQuery string
	DateRange   DateRange

	onChange func()
}

// NewFilters returns criteria at their defaults.
func NewFilters() *Filters {
	return &Filters{DateRange: DefaultDateRange}
}

// OnChange registers the change signal emitted by Set and Reset.
func (f *Filters) OnChange(fn func()) {
	f.onChange = fn
}

// Set updates one field and emits the change signal.
func (f *Filters) Set(key FilterKey, value string) {
	switch key {
	case FilterEventType:
		f.EventType = value
	case FilterSeverity:
		f.Severity = value
	case FilterHostname:
		f.Hostname = value
	case FilterSearch:
		f.SearchQuery = value
	case FilterDateRange:
		f.DateRange = DateRange(value)
	default:
		return
	}

	f.emit()
}

// Reset restores every field to its default and emits the change signal.
func (f *Filters) Reset() {
	f.EventType = ""
	f.Severity = ""
	f.Hostname = ""
	f.SearchQuery = ""
	f.DateRange = DefaultDateRange

	f.emit()
}

// ActiveCount reports how many fields hold a non-default value, for the
// filter badge.
func (f *Filters) ActiveCount() int {
	count := 0

	for _, v := range []string{f.EventType, f.Severity, f.Hostname, f.SearchQuery} {
		if v != "" {
			count++
		}
	}

	if f.DateRange != "" && f.DateRange != DefaultDateRange {
		count++
	}

	return count
}

func (f *Filters) emit() {
	if f.onChange != nil {
		f.onChange()
	}
}
