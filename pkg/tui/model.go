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

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/xdr-console/pkg/models"
	"github.com/carverauto/xdr-console/pkg/view"
)

const (
	defaultTableHeight = 12

	colTime     = 8
	colSeverity = 9
	colType     = 10
	colHostname = 22
	colAgent    = 14
	colProcess  = 18
)

// New builds the dashboard model. now is injectable for tests.
func New(ctx context.Context, state *view.State, controller Controller, exportDir string, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}

	st := newStyles()

	search := textinput.New()
	search.Placeholder = "Search events..."
	search.Width = 40
	search.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	search.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	hostname := textinput.New()
	hostname.Placeholder = "Hostname contains..."
	hostname.Width = 30
	hostname.PromptStyle = search.PromptStyle
	hostname.PlaceholderStyle = search.PlaceholderStyle

	events := table.New(
		table.WithColumns([]table.Column{
			{Title: "Time", Width: colTime},
			{Title: "Severity", Width: colSeverity},
			{Title: "Type", Width: colType},
			{Title: "Hostname", Width: colHostname},
			{Title: "Agent", Width: colAgent},
			{Title: "Process", Width: colProcess},
		}),
		table.WithFocused(true),
		table.WithHeight(defaultTableHeight),
	)

	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		Foreground(lipgloss.Color(draculaPurple)).
		Bold(true)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(lipgloss.Color(draculaForeground)).
		Background(lipgloss.Color(draculaComment))
	events.SetStyles(tableStyles)

	loading := spinner.New()
	loading.Spinner = spinner.Dot
	loading.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPink))

	return &Model{
		state:      state,
		controller: controller,
		ctx:        ctx,
		search:     search,
		hostname:   hostname,
		events:     events,
		loading:    loading,
		styles:     st,
		focused:    focusNone,
		exportDir:  exportDir,
		now:        now,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loading.Tick, m.waitForSnapshot())
}

// waitForSnapshot blocks on the poller's updates channel and feeds the next
// snapshot into the update loop.
func (m *Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.controller.Updates()
		if !ok {
			return nil
		}

		return snapshotMsg(snap)
	}
}

// syncTable rebuilds table rows from the current projection.
func (m *Model) syncTable() {
	filtered := m.state.Projection.Filtered
	rows := make([]table.Row, 0, len(filtered))

	for i := range filtered {
		e := &filtered[i]

		process := e.ProcessName
		if process == "" {
			process = "-"
		}

		rows = append(rows, table.Row{
			e.Timestamp.Local().Format("15:04:05"),
			string(e.Severity),
			typeLabel(e.EventType),
			e.Hostname,
			e.AgentID,
			process,
		})
	}

	m.events.SetRows(rows)

	if cursor := m.events.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.events.SetCursor(len(rows) - 1)
	}
}

// selectedEvent returns the event under the table cursor, nil when the
// table is empty.
func (m *Model) selectedEvent() *models.Event {
	filtered := m.state.Projection.Filtered

	idx := m.events.Cursor()
	if idx < 0 || idx >= len(filtered) {
		return nil
	}

	return &filtered[idx]
}

func typeLabel(t models.EventType) string {
	if glyph, ok := typeGlyphs[t]; ok {
		return glyph + " " + string(t)
	}

	return string(t)
}

// Option cycles for the enumerated filters. The leading empty string is the
// "no constraint" position.
var (
	eventTypeOptions = []string{
		"",
		string(models.EventTypeSystem),
		string(models.EventTypeNetwork),
		string(models.EventTypeProcess),
		string(models.EventTypeFile),
	}

	severityOptions = []string{
		"",
		string(models.SeverityLow),
		string(models.SeverityMedium),
		string(models.SeverityHigh),
		string(models.SeverityCritical),
	}
)

func cycleOption(options []string, current string) string {
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}

	return options[0]
}

func cycleDateRange(current view.DateRange) view.DateRange {
	for i, r := range view.DateRanges {
		if r == current {
			return view.DateRanges[(i+1)%len(view.DateRanges)]
		}
	}

	return view.DefaultDateRange
}
