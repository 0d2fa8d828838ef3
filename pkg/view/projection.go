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

import (
	"strings"
	"time"

	"github.com/carverauto/xdr-console/pkg/models"
)

// Projection is the derived view of the event list under a set of filters.
// Filtered preserves the order of the input and contains only its members.
type Projection struct {
	Filtered       []models.Event
	SeverityCounts map[models.Severity]int
	TypeCounts     map[models.EventType]int

	// Skipped counts events dropped for missing required fields, exposed
	// for diagnostics.
	Skipped int
}

// predicate is one filter criterion. Non-default criteria are collected and
// reduced with logical AND; order does not affect the result.
type predicate func(*models.Event) bool

func buildPredicates(f *Filters, now time.Time) []predicate {
	var preds []predicate

	if f.EventType != "" {
		want := models.EventType(f.EventType)
		preds = append(preds, func(e *models.Event) bool {
			return e.EventType == want
		})
	}

	if f.Severity != "" {
		want := models.Severity(f.Severity)
		preds = append(preds, func(e *models.Event) bool {
			return e.Severity == want
		})
	}

	if f.Hostname != "" {
		needle := strings.ToLower(f.Hostname)
		preds = append(preds, func(e *models.Event) bool {
			return strings.Contains(strings.ToLower(e.Hostname), needle)
		})
	}

	if f.SearchQuery != "" {
		query := strings.ToLower(f.SearchQuery)
		preds = append(preds, func(e *models.Event) bool {
			return strings.Contains(strings.ToLower(e.Hostname), query) ||
				strings.Contains(strings.ToLower(string(e.EventType)), query) ||
				strings.Contains(strings.ToLower(string(e.Severity)), query) ||
				strings.Contains(strings.ToLower(e.AgentID), query) ||
				(e.ProcessName != "" && strings.Contains(strings.ToLower(e.ProcessName), query))
		})
	}

	// The date cutoff always applies; the default selection is the 24h
	// bucket, and unknown ranges fall back to it.
	cutoff := now.Add(-f.DateRange.Duration())
	preds = append(preds, func(e *models.Event) bool {
		return !e.Timestamp.Before(cutoff)
	})

	return preds
}

// Project derives the filtered event list and its aggregates. It is pure:
// the inputs are not mutated and the same inputs always produce the same
// output. now anchors the date-range cutoff.
func Project(events []models.Event, f *Filters, now time.Time) Projection {
	preds := buildPredicates(f, now)

	proj := Projection{
		Filtered:       make([]models.Event, 0, len(events)),
		SeverityCounts: newSeverityCounts(),
		TypeCounts:     make(map[models.EventType]int),
	}

	for i := range events {
		e := &events[i]

		if !e.Valid() {
			proj.Skipped++
			continue
		}

		if !matchAll(e, preds) {
			continue
		}

		proj.Filtered = append(proj.Filtered, *e)

		if e.Severity.Known() {
			proj.SeverityCounts[e.Severity]++
		}

		proj.TypeCounts[e.EventType]++
	}

	return proj
}

func matchAll(e *models.Event, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(e) {
			return false
		}
	}

	return true
}

// newSeverityCounts fixes the aggregate domain to the four known severities
// so the renderer always has every slot, zero or not.
func newSeverityCounts() map[models.Severity]int {
	counts := make(map[models.Severity]int, len(models.Severities))
	for _, s := range models.Severities {
		counts[s] = 0
	}

	return counts
}
