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

// Package export writes the filtered event list as an RFC 4180 CSV file.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/carverauto/xdr-console/pkg/models"
)

// Header is the fixed CSV header row.
var Header = []string{"Timestamp", "Severity", "Type", "Hostname", "Agent ID", "Process"}

// missingProcess is the placeholder for events without a process name.
const missingProcess = "-"

// Filename returns the export file name for the given instant, e.g.
// xdr-events-2024-01-10T12:00:00Z.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("xdr-events-%s.csv", now.UTC().Format(time.RFC3339))
}

// Write emits the header and one row per event, in input order. Fields
// containing commas, quotes, or newlines are quoted per RFC 4180.
func Write(w io.Writer, events []models.Event) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range events {
		if err := cw.Write(row(&events[i])); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Save writes the export into dir and returns the full path. An empty dir
// selects the working directory.
func Save(dir string, events []models.Event, now time.Time) (string, error) {
	path := filepath.Join(dir, Filename(now))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := Write(f, events); err != nil {
		_ = f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	return path, nil
}

func row(e *models.Event) []string {
	process := e.ProcessName
	if process == "" {
		process = missingProcess
	}

	return []string{
		e.Timestamp.Format(time.RFC3339),
		string(e.Severity),
		string(e.EventType),
		e.Hostname,
		e.AgentID,
		process,
	}
}
