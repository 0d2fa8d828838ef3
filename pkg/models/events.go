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

package models

import "time"

// EventType classifies the subsystem an event was collected from. The
// vocabulary is open ended; the console only needs to recognize the four
// types the agents ship today.
type EventType string

const (
	EventTypeSystem  EventType = "system"
	EventTypeNetwork EventType = "network"
	EventTypeProcess EventType = "process"
	EventTypeFile    EventType = "file"
)

// Severity is the ordinal classification of event importance.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists the closed severity domain in ascending order. Aggregators
// iterate this rather than ranging over maps so output order is stable.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Known reports whether s is one of the four recognized severities. Raw data
// may carry anything; unknown severities are kept in the event list but
// excluded from severity aggregates.
func (s Severity) Known() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// Event is a single security observation as delivered by the gateway.
// Events are immutable once received; each poll replaces the list wholesale.
type Event struct {
	Timestamp     time.Time              `json:"timestamp"`
	AgentID       string                 `json:"agent_id"`
	Hostname      string                 `json:"hostname"`
	EventType     EventType              `json:"event_type"`
	Severity      Severity               `json:"severity"`
	SourceIP      string                 `json:"source_ip,omitempty"`
	DestinationIP string                 `json:"destination_ip,omitempty"`
	ProcessName   string                 `json:"process_name,omitempty"`
	ProcessPID    int                    `json:"process_pid,omitempty"`
	Username      string                 `json:"username,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	RawData       map[string]interface{} `json:"raw_data,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// Valid reports whether the event carries the fields the console requires.
// The gateway has shipped rows with a missing timestamp after agent clock
// resets; those are skipped by the projection rather than rendered at the
// epoch.
func (e *Event) Valid() bool {
	return !e.Timestamp.IsZero()
}
