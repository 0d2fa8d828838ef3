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

// Package tui renders the view model as a terminal dashboard. It is
// presentational: every value it displays comes from view.State, and every
// user action is forwarded to the view state or the poller.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/carverauto/xdr-console/pkg/poller"
	"github.com/carverauto/xdr-console/pkg/view"
)

// Focus targets for text entry. When a field is focused, printable keys go
// to it instead of the key bindings.
const (
	focusNone = iota
	focusSearch
	focusHostname
)

// snapshotMsg carries one poller snapshot into the update loop.
type snapshotMsg poller.Snapshot

// statusMsg transient footer notices (export done, copy result).
type statusMsg string

// Controller is the poller surface the dashboard drives.
type Controller interface {
	Updates() <-chan poller.Snapshot
	RefreshNow(ctx context.Context)
	SetAutoRefresh(enabled bool)
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	state      *view.State
	controller Controller
	ctx        context.Context

	search   textinput.Model
	hostname textinput.Model
	events   table.Model
	loading  spinner.Model

	styles     styles
	focused    int
	showDetail bool
	status     string
	exportDir  string
	now        func() time.Time
	width      int
	height     int
}
