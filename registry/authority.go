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

package registry

import (
	"context"
	"errors"

	"github.com/blinklabs-io/nile/database"
	"github.com/blinklabs-io/nile/database/models"
	"github.com/blinklabs-io/nile/database/types"
)

// Bootstrap creates the registry authority with the caller as admin. It can
// only succeed once.
func (r *Registry) Bootstrap(
	ctx context.Context,
	caller Caller,
) (*models.Authority, error) {
	const op = "bootstrap"
	authority := &models.Authority{
		Admin:         caller.Bytes(),
		InitializedAt: r.now(),
	}
	err := r.update(ctx, func(txn *database.Txn) error {
		if err := r.db.CreateAuthority(authority, txn); err != nil {
			if errors.Is(err, types.ErrRecordExists) {
				return ErrAlreadyInitialized
			}
			return err
		}
		return nil
	}, func() {
		r.logger.Info(
			"registry initialized",
			"admin", caller.String(),
		)
	})
	if err != nil {
		return nil, r.fail(op, err)
	}
	return authority, nil
}

// AuthorizeAgent registers a new active agent. Only the admin may call it.
func (r *Registry) AuthorizeAgent(
	ctx context.Context,
	caller Caller,
	agentID types.Identity,
) (*models.Agent, error) {
	const op = "authorize agent"
	var agent *models.Agent
	var agentCount uint32
	err := r.update(ctx, func(txn *database.Txn) error {
		authority, err := r.db.GetAuthority(txn)
		if err != nil {
			return err
		}
		if authority == nil {
			return ErrNotInitialized
		}
		if authority.AdminIdentity() != caller {
			return ErrNotAdmin
		}
		authority.AgentCount, err = incUint32(authority.AgentCount)
		if err != nil {
			return err
		}
		agent = &models.Agent{
			Agent:        agentID.Bytes(),
			AuthorizedBy: caller.Bytes(),
			AuthorizedAt: r.now(),
			Active:       true,
		}
		if err := r.db.CreateAgent(agent, txn); err != nil {
			if errors.Is(err, types.ErrRecordExists) {
				return ErrAgentExists
			}
			return err
		}
		agentCount = authority.AgentCount
		return r.db.UpdateAuthority(authority, txn)
	}, func() {
		if r.metrics != nil {
			r.metrics.agents.Inc()
		}
		r.logger.Info(
			"agent authorized",
			"agent", agentID.String(),
			"agent_count", agentCount,
		)
		r.publish(AgentAuthorizedEventType, AgentAuthorizedEvent{
			Agent:        agentID.String(),
			AuthorizedBy: caller.String(),
			AgentCount:   agentCount,
		})
	})
	if err != nil {
		return nil, r.fail(op, err)
	}
	return agent, nil
}
