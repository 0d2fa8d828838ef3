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

package logger

import (
	"io"

	"github.com/rs/zerolog"
)

type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	Fatal() *zerolog.Event
	Panic() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) zerolog.Logger
	WithFields(fields map[string]interface{}) zerolog.Logger
	SetLevel(level zerolog.Level)
	SetDebug(debug bool)
}

// global adapts the package-level logger to the Logger interface so
// components can take an injected logger in production and a no-op one in
// tests.
type global struct{}

// NewLogger returns a Logger backed by the package-level zerolog instance.
func NewLogger() Logger {
	return global{}
}

func (global) Trace() *zerolog.Event { return globalLogger.Trace() }
func (global) Debug() *zerolog.Event { return globalLogger.Debug() }
func (global) Info() *zerolog.Event  { return globalLogger.Info() }
func (global) Warn() *zerolog.Event  { return globalLogger.Warn() }
func (global) Error() *zerolog.Event { return globalLogger.Error() }
func (global) Fatal() *zerolog.Event { return globalLogger.Fatal() }
func (global) Panic() *zerolog.Event { return globalLogger.Panic() }
func (global) With() zerolog.Context { return globalLogger.With() }
func (global) WithComponent(component string) zerolog.Logger {
	return WithComponent(component)
}
func (global) WithFields(fields map[string]interface{}) zerolog.Logger {
	return WithFields(fields)
}
func (global) SetLevel(level zerolog.Level) { SetLevel(level) }
func (global) SetDebug(debug bool)          { SetDebug(debug) }

// NewTestLogger creates a no-op logger for testing that discards all output
func NewTestLogger() Logger {
	nopLogger := zerolog.New(io.Discard).Level(zerolog.Disabled)
	return &testLogger{nop: nopLogger}
}

// testLogger is a simple logger implementation for testing
type testLogger struct {
	nop zerolog.Logger
}

func (t *testLogger) Trace() *zerolog.Event { return t.nop.Trace() }
func (t *testLogger) Debug() *zerolog.Event { return t.nop.Debug() }
func (t *testLogger) Info() *zerolog.Event  { return t.nop.Info() }
func (t *testLogger) Warn() *zerolog.Event  { return t.nop.Warn() }
func (t *testLogger) Error() *zerolog.Event { return t.nop.Error() }
func (t *testLogger) Fatal() *zerolog.Event { return t.nop.Fatal() }
func (t *testLogger) Panic() *zerolog.Event { return t.nop.Panic() }
func (t *testLogger) With() zerolog.Context { return t.nop.With() }
func (t *testLogger) WithComponent(component string) zerolog.Logger {
	return t.nop.With().Str("component", component).Logger()
}
func (t *testLogger) WithFields(fields map[string]interface{}) zerolog.Logger {
	return t.nop.With().Fields(fields).Logger()
}
func (t *testLogger) SetLevel(level zerolog.Level) { t.nop = t.nop.Level(level) }
func (*testLogger) SetDebug(_ bool)                { /* no-op */ }
