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

// Package registry implements the agent reputation and incident report
// registry: agent authorization, program scoring, report submission and
// quorum voting on top of the database package.
package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/blinklabs-io/nile/database"
	"github.com/blinklabs-io/nile/database/models"
	"github.com/blinklabs-io/nile/database/types"
	"github.com/blinklabs-io/nile/event"
	"github.com/prometheus/client_golang/prometheus"
)

// Caller is the identity an operation runs on behalf of. It is supplied by
// the surrounding runtime and trusted as-is.
type Caller = types.Identity

type Config struct {
	Database     *database.Database
	EventBus     *event.EventBus
	Logger       *slog.Logger
	PromRegistry prometheus.Registerer
	Clock        clock.Clock
}

type Registry struct {
	db       *database.Database
	eventBus *event.EventBus
	logger   *slog.Logger
	clock    clock.Clock
	metrics  *registryMetrics
	// Mutating operations are serialized
	mu sync.RWMutex
}

func New(cfg Config) (*Registry, error) {
	if cfg.Database == nil {
		return nil, errors.New("registry: database is required")
	}
	r := &Registry{
		db:       cfg.Database,
		eventBus: cfg.EventBus,
		logger:   cfg.Logger,
		clock:    cfg.Clock,
	}
	if r.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		r.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	r.logger = r.logger.With("component", "registry")
	if r.clock == nil {
		r.clock = clock.New()
	}
	if cfg.PromRegistry != nil {
		r.initMetrics(cfg.PromRegistry)
	}
	return r, nil
}

// Database returns the underlying database
func (r *Registry) Database() *database.Database {
	return r.db
}

func (r *Registry) now() int64 {
	return r.clock.Now().Unix()
}

// fail records a refused or failed operation and returns its error with the
// operation name attached
func (r *Registry) fail(op string, err error) error {
	err = withOp(op, err)
	if code, ok := CodeOf(err); ok {
		r.logger.Debug(
			"operation refused",
			"op", op,
			"code", code.String(),
		)
		if r.metrics != nil {
			r.metrics.rejectedOps.WithLabelValues(op, code.String()).Inc()
		}
		return err
	}
	r.logger.Error(
		"operation failed",
		"op", op,
		"error", err,
	)
	return err
}

// update runs fn in a read-write transaction while holding the write lock.
// committed runs after a successful commit, still under the lock, so events
// published from it follow commit order.
func (r *Registry) update(
	ctx context.Context,
	fn func(*database.Txn) error,
	committed func(),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.db.Transaction(true).Do(fn); err != nil {
		return err
	}
	if committed != nil {
		committed()
	}
	return nil
}

// view runs fn in a read-only transaction while holding the read lock
func (r *Registry) view(
	ctx context.Context,
	fn func(*database.Txn) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	txn := r.db.Transaction(false)
	defer txn.Release()
	return fn(txn)
}

// activeAgent loads the caller's agent record and checks it may act
func (r *Registry) activeAgent(
	caller Caller,
	txn *database.Txn,
) (*models.Agent, error) {
	agent, err := r.db.GetAgent(caller, txn)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, ErrUnauthorizedAgent
	}
	if !agent.Active {
		return nil, ErrAgentSuspended
	}
	return agent, nil
}

// award adds reputation points to an agent
func award(agent *models.Agent, points uint64) error {
	var err error
	agent.Points, err = addUint64(agent.Points, points)
	return err
}
