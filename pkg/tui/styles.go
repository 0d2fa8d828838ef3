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
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/xdr-console/pkg/models"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	card     lipgloss.Style
	cardName lipgloss.Style
	value    lipgloss.Style
	help     lipgloss.Style
	hint     lipgloss.Style
	success  lipgloss.Style
	error    lipgloss.Style
	banner   lipgloss.Style
	badge    lipgloss.Style
	section  lipgloss.Style
	app      lipgloss.Style

	severity map[models.Severity]lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		card: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaPurple)),
		cardName: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		value: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaRed)).
			Padding(0, 1),
		badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		section: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPurple)).
			Bold(true),
		app: lipgloss.NewStyle().
			Padding(1, 2).
			Foreground(lipgloss.Color(draculaForeground)),
		severity: map[models.Severity]lipgloss.Style{
			models.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color(draculaGreen)),
			models.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan)),
			models.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color(draculaOrange)),
			models.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color(draculaRed)),
		},
	}
}

// severityStyle falls back to plain foreground for unknown severities.
func (s styles) severityStyle(sev models.Severity) lipgloss.Style {
	if style, ok := s.severity[sev]; ok {
		return style
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground))
}

// typeGlyphs marks the event types the console recognizes; unknown types
// render without a glyph.
var typeGlyphs = map[models.EventType]string{
	models.EventTypeSystem:  "⚙",
	models.EventTypeNetwork: "⇄",
	models.EventTypeProcess: "▶",
	models.EventTypeFile:    "🗎",
}
