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
	"encoding/json"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/carverauto/xdr-console/pkg/export"
	"github.com/carverauto/xdr-console/pkg/models"
	"github.com/carverauto/xdr-console/pkg/poller"
	"github.com/carverauto/xdr-console/pkg/view"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTable()

		return m, nil

	case snapshotMsg:
		m.state.Apply(poller.Snapshot(msg))
		m.syncTable()

		return m, m.waitForSnapshot()

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focused != focusNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r":
		// Manual refresh doubles as the retry action for the blocking
		// error screen.
		m.status = ""
		m.controller.RefreshNow(m.ctx)

		return m, nil

	case "a":
		m.state.AutoRefresh = !m.state.AutoRefresh
		m.controller.SetAutoRefresh(m.state.AutoRefresh)

		return m, nil

	case "/":
		m.focused = focusSearch
		return m, m.search.Focus()

	case "h":
		m.focused = focusHostname
		return m, m.hostname.Focus()

	case "t":
		next := cycleOption(eventTypeOptions, m.state.Filters.EventType)
		m.state.SetFilter(view.FilterEventType, next)
		m.syncTable()

		return m, nil

	case "s":
		next := cycleOption(severityOptions, m.state.Filters.Severity)
		m.state.SetFilter(view.FilterSeverity, next)
		m.syncTable()

		return m, nil

	case "d":
		next := cycleDateRange(m.state.Filters.DateRange)
		m.state.SetFilter(view.FilterDateRange, string(next))
		m.syncTable()

		return m, nil

	case "R":
		m.state.ResetFilters()
		m.search.SetValue("")
		m.hostname.SetValue("")
		m.syncTable()

		return m, nil

	case "x", "e":
		return m, m.exportCmd()

	case "c":
		return m, m.copyCmd()

	case "enter":
		if m.selectedEvent() != nil {
			m.showDetail = !m.showDetail
		}

		return m, nil

	case "esc":
		if m.showDetail {
			m.showDetail = false
			return m, nil
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.events, cmd = m.events.Update(msg)

	return m, cmd
}

// handleInputKey routes keys to the focused text field and mirrors its value
// into the filter criteria on every change.
func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		m.hostname.Blur()
		m.focused = focusNone

		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd

	switch m.focused {
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
		m.state.SetFilter(view.FilterSearch, m.search.Value())
	case focusHostname:
		m.hostname, cmd = m.hostname.Update(msg)
		m.state.SetFilter(view.FilterHostname, m.hostname.Value())
	}

	m.syncTable()

	return m, cmd
}

// exportCmd writes the current filtered rows, not the raw snapshot, so the
// file matches what the operator is looking at.
func (m *Model) exportCmd() tea.Cmd {
	events := make([]models.Event, len(m.state.Projection.Filtered))
	copy(events, m.state.Projection.Filtered)

	dir := m.exportDir
	now := m.now()

	return func() tea.Msg {
		path, err := export.Save(dir, events, now)
		if err != nil {
			return statusMsg("Export failed: " + err.Error())
		}

		return statusMsg("Exported " + path)
	}
}

func (m *Model) copyCmd() tea.Cmd {
	event := m.selectedEvent()
	if event == nil {
		return nil
	}

	payload, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return func() tea.Msg { return statusMsg("Copy failed: " + err.Error()) }
	}

	return func() tea.Msg {
		if err := clipboard.WriteAll(string(payload)); err != nil {
			return statusMsg("Copy failed: " + err.Error())
		}

		return statusMsg("Event copied to clipboard")
	}
}

func (m *Model) resizeTable() {
	height := m.height - 18
	if height < 4 {
		height = 4
	}

	if height > 24 {
		height = 24
	}

	m.events.SetHeight(height)
}
