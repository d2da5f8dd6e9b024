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

package gormstore

import (
	"fmt"

	"github.com/blinklabs-io/nile/database/models"
	"github.com/blinklabs-io/nile/database/types"
)

// GetAgent returns the agent record for the given key, or nil if none exists
func (s *Store) GetAgent(
	agent []byte,
	txn types.Txn,
) (*models.Agent, error) {
	db, err := s.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Agent{}
	found, err := first(db, ret, "agent = ?", agent)
	if err != nil {
		return nil, fmt.Errorf("get agent: %w", err)
	}
	if !found {
		return nil, nil
	}
	return ret, nil
}

// CreateAgent creates an agent record. It fails with types.ErrRecordExists
// if the agent key is already present.
func (s *Store) CreateAgent(agent *models.Agent, txn types.Txn) error {
	db, err := s.resolveDB(txn)
	if err != nil {
		return err
	}
	return createOnce(db, agent, "agent = ?", agent.Agent)
}

func (s *Store) UpdateAgent(agent *models.Agent, txn types.Txn) error {
	db, err := s.resolveDB(txn)
	if err != nil {
		return err
	}
	if err := save(db, agent); err != nil {
		return fmt.Errorf("update agent: %w", err)
	}
	return nil
}

// GetAgents returns agents ordered by reputation points, highest first. A
// limit of zero or less returns all agents.
func (s *Store) GetAgents(limit int, txn types.Txn) ([]models.Agent, error) {
	db, err := s.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	var ret []models.Agent
	query := db.Order("points DESC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if result := query.Find(&ret); result.Error != nil {
		return nil, fmt.Errorf("get agents: %w", result.Error)
	}
	return ret, nil
}
