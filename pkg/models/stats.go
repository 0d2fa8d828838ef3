package models

import "time"

// StatsSnapshot aggregates gateway-wide event counts that are expensive to
// derive from the event list alone. The gateway recomputes it on demand.
type StatsSnapshot struct {
	TotalEvents int       `json:"total_events"`
	LastUpdated time.Time `json:"last_updated"`
}

// TimelineBucket is a pre-aggregated count of events for one severity within
// one backend bucketing interval. Timestamp is the bucket start.
type TimelineBucket struct {
	Timestamp time.Time `json:"timestamp"`
	Severity  Severity  `json:"severity"`
	Count     int       `json:"count"`
}
