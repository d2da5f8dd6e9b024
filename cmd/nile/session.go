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
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/nile/database"
	"github.com/blinklabs-io/nile/database/types"
	"github.com/blinklabs-io/nile/event"
	"github.com/blinklabs-io/nile/internal/config"
	"github.com/blinklabs-io/nile/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// session is an open registry along with the resources backing it
type session struct {
	registry     *registry.Registry
	db           *database.Database
	eventBus     *event.EventBus
	promRegistry *prometheus.Registry
	logger       *slog.Logger
	metricsFile  string
	shutdownFn   func(context.Context) error
}

var sessionEventTypes = []event.EventType{
	registry.AgentAuthorizedEventType,
	registry.ProgramRegisteredEventType,
	registry.ScoreSubmittedEventType,
	registry.ReportSubmittedEventType,
	registry.ReportVotedEventType,
	registry.ReportFinalizedEventType,
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return nil, errors.New("no config found in context")
	}
	logger := slog.Default()
	shutdownTracing, err := setupTracing(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	promRegistry := prometheus.NewRegistry()
	db, err := database.New(&database.Config{
		Logger:         logger,
		PromRegistry:   promRegistry,
		DataDir:        cfg.DataDir,
		BlobPlugin:     cfg.BlobPlugin,
		MetadataPlugin: cfg.MetadataPlugin,
	})
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		_ = shutdownTracing(context.Background())
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	evtLog, err := openEventLog(cfg.EventLogFile, logger)
	if err != nil {
		_ = db.Close()
		_ = shutdownTracing(context.Background())
		return nil, err
	}
	eventBus := event.NewEventBus(promRegistry, logger)
	for _, evtType := range sessionEventTypes {
		eventBus.RegisterSubscriber(evtType, evtLog)
	}
	reg, err := registry.New(registry.Config{
		Database:     db,
		EventBus:     eventBus,
		Logger:       logger,
		PromRegistry: promRegistry,
	})
	if err != nil {
		eventBus.Stop()
		_ = db.Close()
		_ = shutdownTracing(context.Background())
		return nil, err
	}
	return &session{
		registry:     reg,
		db:           db,
		eventBus:     eventBus,
		promRegistry: promRegistry,
		logger:       logger,
		metricsFile:  cfg.MetricsFile,
		shutdownFn:   shutdownTracing,
	}, nil
}

// Close stops the event bus, dumps metrics if configured and closes the
// database
func (s *session) Close() error {
	s.eventBus.Stop()
	var errs []error
	if s.metricsFile != "" {
		if err := prometheus.WriteToTextfile(s.metricsFile, s.promRegistry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.shutdownFn(context.Background()); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
	}
	return errors.Join(errs...)
}

// withSession opens a session for the duration of fn
func withSession(
	cmd *cobra.Command,
	fn func(*session) error,
) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	return fn(s)
}

// callerIdentity parses the --caller flag
func callerIdentity() (types.Identity, error) {
	if globalFlags.caller == "" {
		return types.Identity{}, errors.New("--caller is required")
	}
	id, err := types.NewIdentityFromString(globalFlags.caller)
	if err != nil {
		return types.Identity{}, fmt.Errorf("invalid caller: %w", err)
	}
	return id, nil
}

func parseIdentity(kind string, value string) (types.Identity, error) {
	id, err := types.NewIdentityFromString(value)
	if err != nil {
		return types.Identity{}, fmt.Errorf("invalid %s id: %w", kind, err)
	}
	return id, nil
}
