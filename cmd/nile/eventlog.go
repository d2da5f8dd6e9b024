// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/blinklabs-io/nile/event"
	"gopkg.in/yaml.v3"
)

// eventRecord is one YAML document in the event log
type eventRecord struct {
	Type      string `yaml:"type"`
	Timestamp string `yaml:"timestamp"`
	Data      any    `yaml:"data"`
}

// eventLog is an event bus subscriber that logs registry events and, when
// a file is configured, appends each one to it as a YAML document
type eventLog struct {
	logger  *slog.Logger
	file    *os.File
	encoder *yaml.Encoder
	mu      sync.Mutex
	closed  bool
}

func openEventLog(path string, logger *slog.Logger) (*eventLog, error) {
	l := &eventLog{logger: logger}
	if path == "" {
		return l, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	l.file = f
	l.encoder = yaml.NewEncoder(f)
	l.encoder.SetIndent(2)
	return l, nil
}

func (l *eventLog) Deliver(evt event.Event) error {
	l.logger.Debug(
		"registry event",
		"component", programName,
		"type", evt.Type,
		"data", evt.Data,
	)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.encoder == nil {
		return nil
	}
	err := l.encoder.Encode(eventRecord{
		Type:      string(evt.Type),
		Timestamp: evt.Timestamp.UTC().Format(time.RFC3339),
		Data:      evt.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to write event log: %w", err)
	}
	return nil
}

// Close flushes and closes the log file. The same eventLog is registered
// for several event types, so Close runs once per registration.
func (l *eventLog) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.encoder == nil {
		return
	}
	if err := l.encoder.Close(); err != nil {
		l.logger.Error(
			"failed to flush event log",
			"component", programName,
			"error", err,
		)
	}
	if err := l.file.Close(); err != nil {
		l.logger.Error(
			"failed to close event log",
			"component", programName,
			"error", err,
		)
	}
}
