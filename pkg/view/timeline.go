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
	"sort"
	"time"

	"github.com/carverauto/xdr-console/pkg/models"
)

// TimelinePoint is one stacked row of the timeline series: the per-severity
// sums of every backend bucket sharing an HH:MM label.
type TimelinePoint struct {
	Label    string
	Low      int
	Medium   int
	High     int
	Critical int
	Total    int

	minutes int // hour*60+minute sort key
}

// AggregateTimeline groups raw buckets by their HH:MM label in loc, sums
// counts into severity slots and the total, and sorts ascending by time of
// day. Grouping by label collapses buckets from different days onto one row;
// the query window is 24 hours with one-hour buckets, so collisions cannot
// occur in normal operation.
func AggregateTimeline(buckets []models.TimelineBucket, loc *time.Location) []TimelinePoint {
	if len(buckets) == 0 {
		return []TimelinePoint{}
	}

	grouped := make(map[string]*TimelinePoint)

	for i := range buckets {
		b := &buckets[i]
		local := b.Timestamp.In(loc)
		label := local.Format("15:04")

		point, ok := grouped[label]
		if !ok {
			point = &TimelinePoint{
				Label:   label,
				minutes: local.Hour()*60 + local.Minute(),
			}
			grouped[label] = point
		}

		switch b.Severity {
		case models.SeverityLow:
			point.Low += b.Count
		case models.SeverityMedium:
			point.Medium += b.Count
		case models.SeverityHigh:
			point.High += b.Count
		case models.SeverityCritical:
			point.Critical += b.Count
		default:
			// No slot for unknown severities; they still count toward
			// the total, matching the stacked chart's behavior.
		}

		point.Total += b.Count
	}

	series := make([]TimelinePoint, 0, len(grouped))
	for _, point := range grouped {
		series = append(series, *point)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].minutes < series[j].minutes
	})

	return series
}
