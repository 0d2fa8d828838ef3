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
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/xdr-console/pkg/models"
)

const timelineBarWidth = 30

func (m *Model) View() string {
	if m.state.Loading && len(m.state.Events) == 0 && m.state.Err == nil {
		return m.styles.app.Render(fmt.Sprintf("%s Loading dashboard...", m.loading.View()))
	}

	if m.state.Blocked() {
		return m.viewBlocked()
	}

	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	if m.state.Err != nil {
		b.WriteString(m.styles.banner.Render("Failed to load events: " + m.state.Err.Error() + "  (showing last good data, press r to retry)"))
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewStats())
	b.WriteString("\n\n")
	b.WriteString(m.viewFilters())
	b.WriteString("\n\n")

	if len(m.state.Timeline) > 0 {
		b.WriteString(m.viewTimeline())
		b.WriteString("\n\n")
	}

	if len(m.state.Projection.TypeCounts) > 0 {
		b.WriteString(m.viewTypes())
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewEvents())

	if m.showDetail {
		if event := m.selectedEvent(); event != nil {
			b.WriteString("\n\n")
			b.WriteString(m.viewDetail(event))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.viewFooter())

	return m.styles.app.Render(b.String())
}

func (m *Model) viewBlocked() string {
	var b strings.Builder

	b.WriteString(m.styles.error.Render("Failed to load events"))
	b.WriteString("\n\n")
	b.WriteString(m.state.Err.Error())
	b.WriteString("\n\n")
	b.WriteString(m.styles.hint.Render("r") + m.styles.help.Render(" retry  ") +
		m.styles.hint.Render("q") + m.styles.help.Render(" quit"))

	return m.styles.app.Render(b.String())
}

func (m *Model) viewHeader() string {
	auto := m.styles.success.Render("auto-refresh ON")
	if !m.state.AutoRefresh {
		auto = m.styles.hint.Render("auto-refresh OFF")
	}

	refreshing := ""
	if m.state.Loading {
		refreshing = "  " + m.loading.View()
	}

	return m.styles.title.Render("XDR Security Console") + "  " +
		m.styles.subtitle.Render("|") + "  " + auto + refreshing
}

func (m *Model) viewStats() string {
	total := len(m.state.Events)
	if m.state.Stats != nil {
		total = m.state.Stats.TotalEvents
	}

	cards := []string{
		m.card("Total Events", fmt.Sprintf("%d", total), m.styles.value),
	}

	for _, sev := range models.Severities {
		cards = append(cards, m.card(
			titleCase(string(sev)),
			fmt.Sprintf("%d", m.state.Projection.SeverityCounts[sev]),
			m.styles.severityStyle(sev),
		))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func (m *Model) card(name, value string, valueStyle lipgloss.Style) string {
	content := m.styles.cardName.Render(name) + "\n" + valueStyle.Render(value)
	return m.styles.card.Render(content)
}

func (m *Model) viewFilters() string {
	f := m.state.Filters

	parts := []string{m.styles.section.Render("Filters")}

	if n := f.ActiveCount(); n > 0 {
		parts = append(parts, m.styles.badge.Render(fmt.Sprintf("(%d active)", n)))
	}

	parts = append(parts,
		m.filterChip("type", f.EventType, "all"),
		m.filterChip("severity", f.Severity, "all"),
		m.filterChip("range", string(f.DateRange), ""),
	)

	line := strings.Join(parts, "  ")

	if m.focused == focusSearch || f.SearchQuery != "" {
		line += "\n" + m.search.View()
	}

	if m.focused == focusHostname || f.Hostname != "" {
		line += "\n" + m.hostname.View()
	}

	return line
}

func (m *Model) filterChip(name, value, empty string) string {
	if value == "" {
		value = empty
	}

	return m.styles.cardName.Render(name+":") + m.styles.value.Render(value)
}

func (m *Model) viewTimeline() string {
	max := 0
	for _, p := range m.state.Timeline {
		if p.Total > max {
			max = p.Total
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.section.Render("Timeline (24h)"))

	for _, p := range m.state.Timeline {
		b.WriteString("\n")
		b.WriteString(m.styles.cardName.Render(p.Label))
		b.WriteString(" ")
		b.WriteString(m.timelineBar(p.Low, p.Medium, p.High, p.Critical, max))
		b.WriteString(" ")
		b.WriteString(m.styles.subtitle.Render(fmt.Sprintf("%d", p.Total)))
	}

	return b.String()
}

// timelineBar renders one stacked severity bar scaled against the busiest
// bucket.
func (m *Model) timelineBar(low, medium, high, critical, max int) string {
	if max == 0 {
		return ""
	}

	segments := []struct {
		count int
		sev   models.Severity
	}{
		{critical, models.SeverityCritical},
		{high, models.SeverityHigh},
		{medium, models.SeverityMedium},
		{low, models.SeverityLow},
	}

	var b strings.Builder

	for _, seg := range segments {
		width := seg.count * timelineBarWidth / max
		if seg.count > 0 && width == 0 {
			width = 1
		}

		b.WriteString(m.styles.severityStyle(seg.sev).Render(strings.Repeat("█", width)))
	}

	return b.String()
}

// viewTypes renders the event type distribution over the filtered set, one
// scaled bar per distinct type, busiest first.
func (m *Model) viewTypes() string {
	counts := m.state.Projection.TypeCounts

	types := make([]models.EventType, 0, len(counts))
	max := 0

	for t, n := range counts {
		types = append(types, t)

		if n > max {
			max = n
		}
	}

	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}

		return types[i] < types[j]
	})

	var b strings.Builder
	b.WriteString(m.styles.section.Render("Event Types"))

	for _, t := range types {
		width := counts[t] * timelineBarWidth / max
		if width == 0 {
			width = 1
		}

		b.WriteString("\n")
		b.WriteString(m.styles.cardName.Render(fmt.Sprintf("%-10s", typeLabel(t))))
		b.WriteString(" ")
		b.WriteString(m.styles.value.Render(strings.Repeat("█", width)))
		b.WriteString(" ")
		b.WriteString(m.styles.subtitle.Render(fmt.Sprintf("%d", counts[t])))
	}

	return b.String()
}

func (m *Model) viewEvents() string {
	filtered := len(m.state.Projection.Filtered)
	total := len(m.state.Events)

	header := m.styles.section.Render("Events") + "  " +
		m.styles.badge.Render(fmt.Sprintf("%d / %d", filtered, total))

	if m.state.Projection.Skipped > 0 {
		header += "  " + m.styles.subtitle.Render(fmt.Sprintf("(%d malformed skipped)", m.state.Projection.Skipped))
	}

	if filtered == 0 {
		empty := "No events in the selected window."
		if m.state.Filters.ActiveCount() > 0 {
			empty = "No events match the current filters. Press R to reset."
		}

		return header + "\n" + m.styles.subtitle.Render(empty)
	}

	return header + "\n" + m.events.View()
}

func (m *Model) viewDetail(event *models.Event) string {
	var b strings.Builder

	b.WriteString(m.styles.section.Render("Event Detail"))
	b.WriteString("\n")
	b.WriteString(m.detailRow("Timestamp", event.Timestamp.Local().Format("2006-01-02 15:04:05 MST")))
	b.WriteString(m.detailRow("Severity", string(event.Severity)))
	b.WriteString(m.detailRow("Type", string(event.EventType)))
	b.WriteString(m.detailRow("Hostname", event.Hostname))
	b.WriteString(m.detailRow("Agent", event.AgentID))

	if event.SourceIP != "" {
		b.WriteString(m.detailRow("Source IP", event.SourceIP))
	}

	if event.DestinationIP != "" {
		b.WriteString(m.detailRow("Dest IP", event.DestinationIP))
	}

	if event.ProcessName != "" {
		process := event.ProcessName
		if event.ProcessPID != 0 {
			process = fmt.Sprintf("%s (pid %d)", process, event.ProcessPID)
		}

		b.WriteString(m.detailRow("Process", process))
	}

	if event.Username != "" {
		b.WriteString(m.detailRow("User", event.Username))
	}

	if len(event.Tags) > 0 {
		b.WriteString(m.detailRow("Tags", strings.Join(event.Tags, ", ")))
	}

	if len(event.RawData) > 0 {
		if raw, err := json.Marshal(event.RawData); err == nil {
			b.WriteString(m.detailRow("Raw", string(raw)))
		}
	}

	return m.styles.card.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) detailRow(name, value string) string {
	return m.styles.cardName.Render(fmt.Sprintf("%-10s", name)) + " " + value + "\n"
}

func (m *Model) viewFooter() string {
	var b strings.Builder

	if m.state.Stats != nil && !m.state.Stats.LastUpdated.IsZero() {
		b.WriteString(m.styles.subtitle.Render(
			"last updated " + m.state.Stats.LastUpdated.Local().Format("15:04:05")))
		b.WriteString("  ")
	}

	if m.status != "" {
		b.WriteString(m.styles.success.Render(m.status))
		b.WriteString("  ")
	}

	b.WriteString("\n")
	b.WriteString(m.helpLine())

	return b.String()
}

func (m *Model) helpLine() string {
	bindings := []struct{ key, action string }{
		{"/", "search"},
		{"h", "hostname"},
		{"t", "type"},
		{"s", "severity"},
		{"d", "range"},
		{"R", "reset"},
		{"r", "refresh"},
		{"a", "auto"},
		{"x", "export"},
		{"c", "copy"},
		{"enter", "detail"},
		{"q", "quit"},
	}

	parts := make([]string, 0, len(bindings))
	for _, bind := range bindings {
		parts = append(parts, m.styles.hint.Render(bind.key)+m.styles.help.Render(" "+bind.action))
	}

	return strings.Join(parts, m.styles.help.Render("  "))
}
