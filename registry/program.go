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
	"github.com/blinklabs-io/nile/score"
)

// RegisterProgram creates the baseline profile for a program. Anyone may
// register a program.
func (r *Registry) RegisterProgram(
	ctx context.Context,
	caller Caller,
	programID types.Identity,
	name string,
) (*models.Program, error) {
	const op = "register program"
	if len(name) > MaxNameLength {
		return nil, r.fail(op, ErrNameTooLong)
	}
	_, grade := score.Aggregate(score.SubScores{})
	program := &models.Program{
		Program:      programID.Bytes(),
		Registrant:   caller.Bytes(),
		Name:         name,
		Grade:        grade.String(),
		RegisteredAt: r.now(),
	}
	err := r.update(ctx, func(txn *database.Txn) error {
		if err := r.db.CreateProgram(program, txn); err != nil {
			if errors.Is(err, types.ErrRecordExists) {
				return ErrProgramExists
			}
			return err
		}
		return nil
	}, func() {
		if r.metrics != nil {
			r.metrics.programs.Inc()
		}
		r.logger.Info(
			"program registered",
			"program", programID.String(),
			"name", name,
		)
		r.publish(ProgramRegisteredEventType, ProgramRegisteredEvent{
			Program:    programID.String(),
			Registrant: caller.String(),
			Name:       name,
		})
	})
	if err != nil {
		return nil, r.fail(op, err)
	}
	return program, nil
}

// SubmitScore overwrites a program's sub-scores with a new assessment from
// an active agent and recomputes its total and grade
func (r *Registry) SubmitScore(
	ctx context.Context,
	caller Caller,
	programID types.Identity,
	scores score.SubScores,
	detailsURI string,
) (*models.Program, error) {
	const op = "submit score"
	if err := scores.Validate(); err != nil {
		return nil, r.fail(op, &Error{Code: CodeScoreOutOfRange, Err: err})
	}
	if len(detailsURI) > MaxDetailsURILength {
		return nil, r.fail(op, ErrDetailsTooLong)
	}
	total, grade := score.Aggregate(scores)
	var program *models.Program
	err := r.update(ctx, func(txn *database.Txn) error {
		agent, err := r.activeAgent(caller, txn)
		if err != nil {
			return err
		}
		program, err = r.db.GetProgram(programID, txn)
		if err != nil {
			return err
		}
		if program == nil {
			return ErrProgramNotFound
		}
		authority, err := r.db.GetAuthority(txn)
		if err != nil {
			return err
		}
		if authority == nil {
			return ErrNotInitialized
		}
		program.NameScore = scores.Name
		program.ImageScore = scores.Image
		program.LikenessScore = scores.Likeness
		program.EssenceScore = scores.Essence
		program.TotalScore = total
		program.Grade = grade.String()
		program.LastScoredAt = r.now()
		program.DetailsUri = detailsURI
		if program.ScoreCount, err = incUint32(program.ScoreCount); err != nil {
			return err
		}
		if agent.TotalScores, err = incUint64(agent.TotalScores); err != nil {
			return err
		}
		if err := award(agent, PointsPerScore); err != nil {
			return err
		}
		authority.TotalScoresSubmitted, err = incUint64(authority.TotalScoresSubmitted)
		if err != nil {
			return err
		}
		if err := r.db.UpdateProgram(program, txn); err != nil {
			return err
		}
		if err := r.db.UpdateAgent(agent, txn); err != nil {
			return err
		}
		return r.db.UpdateAuthority(authority, txn)
	}, func() {
		if r.metrics != nil {
			r.metrics.scores.Inc()
		}
		r.logger.Debug(
			"score submitted",
			"program", programID.String(),
			"agent", caller.String(),
			"total", total,
			"grade", grade.String(),
		)
		r.publish(ScoreSubmittedEventType, ScoreSubmittedEvent{
			Program:    programID.String(),
			Agent:      caller.String(),
			Grade:      grade.String(),
			TotalScore: total,
			ScoreCount: program.ScoreCount,
		})
	})
	if err != nil {
		return nil, r.fail(op, err)
	}
	return program, nil
}
