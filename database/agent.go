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

package database

import (
	"github.com/blinklabs-io/nile/database/models"
	"github.com/blinklabs-io/nile/database/types"
)

// GetAgent returns the agent record for the given identity, or nil if none exists
func (d *Database) GetAgent(
	agent types.Identity,
	txn *Txn,
) (*models.Agent, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.metadata.GetAgent(agent.Bytes(), txn.Metadata())
}

// CreateAgent stores a new agent record. It returns types.ErrRecordExists if
// the agent already has a record.
func (d *Database) CreateAgent(agent *models.Agent, txn *Txn) error {
	if txn == nil {
		return d.Transaction(true).Do(func(txn *Txn) error {
			return d.metadata.CreateAgent(agent, txn.Metadata())
		})
	}
	return d.metadata.CreateAgent(agent, txn.Metadata())
}

func (d *Database) UpdateAgent(agent *models.Agent, txn *Txn) error {
	if txn == nil {
		return d.Transaction(true).Do(func(txn *Txn) error {
			return d.metadata.UpdateAgent(agent, txn.Metadata())
		})
	}
	return d.metadata.UpdateAgent(agent, txn.Metadata())
}

// GetAgents returns up to limit agents ordered by points, highest first. A
// limit of zero returns all agents.
func (d *Database) GetAgents(limit int, txn *Txn) ([]models.Agent, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.metadata.GetAgents(limit, txn.Metadata())
}
