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

	"github.com/blinklabs-io/nile/database"
	"github.com/blinklabs-io/nile/database/models"
	"github.com/blinklabs-io/nile/database/types"
)

// Authority returns the registry authority
func (r *Registry) Authority(ctx context.Context) (*models.Authority, error) {
	var ret *models.Authority
	err := r.view(ctx, func(txn *database.Txn) error {
		var err error
		ret, err = r.db.GetAuthority(txn)
		if err != nil {
			return err
		}
		if ret == nil {
			return ErrNotInitialized
		}
		return nil
	})
	if err != nil {
		return nil, withOp("get authority", err)
	}
	return ret, nil
}

// Agent returns an agent record. It fails with ErrUnauthorizedAgent for an
// identity that was never authorized.
func (r *Registry) Agent(
	ctx context.Context,
	agentID types.Identity,
) (*models.Agent, error) {
	var ret *models.Agent
	err := r.view(ctx, func(txn *database.Txn) error {
		var err error
		ret, err = r.db.GetAgent(agentID, txn)
		if err != nil {
			return err
		}
		if ret == nil {
			return ErrUnauthorizedAgent
		}
		return nil
	})
	if err != nil {
		return nil, withOp("get agent", err)
	}
	return ret, nil
}

func (r *Registry) Program(
	ctx context.Context,
	programID types.Identity,
) (*models.Program, error) {
	var ret *models.Program
	err := r.view(ctx, func(txn *database.Txn) error {
		var err error
		ret, err = r.db.GetProgram(programID, txn)
		if err != nil {
			return err
		}
		if ret == nil {
			return ErrProgramNotFound
		}
		return nil
	})
	if err != nil {
		return nil, withOp("get program", err)
	}
	return ret, nil
}

func (r *Registry) Report(
	ctx context.Context,
	reportID types.Identity,
) (*models.Report, error) {
	var ret *models.Report
	err := r.view(ctx, func(txn *database.Txn) error {
		var err error
		ret, err = r.db.GetReport(reportID, txn)
		if err != nil {
			return err
		}
		if ret == nil {
			return ErrReportNotFound
		}
		return nil
	})
	if err != nil {
		return nil, withOp("get report", err)
	}
	return ret, nil
}

// Vote returns the vote an agent cast on a report, or nil if it has not voted
func (r *Registry) Vote(
	ctx context.Context,
	reportID types.Identity,
	agentID types.Identity,
) (*models.Vote, error) {
	var ret *models.Vote
	err := r.view(ctx, func(txn *database.Txn) error {
		var err error
		ret, err = r.db.GetVote(reportID, agentID, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// ReportVotes returns every vote cast on a report
func (r *Registry) ReportVotes(
	ctx context.Context,
	reportID types.Identity,
) ([]models.Vote, error) {
	var ret []models.Vote
	err := r.view(ctx, func(txn *database.Txn) error {
		var err error
		ret, err = r.db.GetReportVotes(reportID, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Reports returns the reports filed against a program, newest first
func (r *Registry) Reports(
	ctx context.Context,
	programID types.Identity,
) ([]models.Report, error) {
	var ret []models.Report
	err := r.view(ctx, func(txn *database.Txn) error {
		var err error
		ret, err = r.db.GetReportsByProgram(programID, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Leaderboard returns up to limit agents ranked by reputation points. A
// limit of zero returns every agent.
func (r *Registry) Leaderboard(
	ctx context.Context,
	limit int,
) ([]models.Agent, error) {
	var ret []models.Agent
	err := r.view(ctx, func(txn *database.Txn) error {
		var err error
		ret, err = r.db.GetAgents(limit, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
