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

// VoteReport records an agent's vote on an open report and finalizes the
// report if the vote crosses the acceptance or rejection threshold. Each
// agent may vote once per report, and never on its own report.
func (r *Registry) VoteReport(
	ctx context.Context,
	caller Caller,
	reportID types.Identity,
	approve bool,
) (*models.Report, error) {
	const op = "vote report"
	var report *models.Report
	var finalized bool
	err := r.update(ctx, func(txn *database.Txn) error {
		var err error
		report, err = r.db.GetReport(reportID, txn)
		if err != nil {
			return err
		}
		if report == nil {
			return ErrReportNotFound
		}
		if report.Finalized {
			return ErrReportFinalized
		}
		agent, err := r.activeAgent(caller, txn)
		if err != nil {
			return err
		}
		if report.SubmitterIdentity() == caller {
			return ErrSelfVote
		}
		now := r.now()
		vote := &models.Vote{
			Report:   reportID.Bytes(),
			Agent:    caller.Bytes(),
			Approved: approve,
			VotedAt:  now,
		}
		if err := r.db.CreateVote(vote, txn); err != nil {
			if errors.Is(err, types.ErrRecordExists) {
				return ErrAlreadyVoted
			}
			return err
		}
		finalized, err = applyVote(report, approve, now)
		if err != nil {
			return err
		}
		if agent.TotalVotes, err = incUint64(agent.TotalVotes); err != nil {
			return err
		}
		if err := award(agent, PointsPerVote); err != nil {
			return err
		}
		if err := r.db.UpdateReport(report, txn); err != nil {
			return err
		}
		return r.db.UpdateAgent(agent, txn)
	}, func() {
		if r.metrics != nil {
			stance := "reject"
			if approve {
				stance = "approve"
			}
			r.metrics.votes.WithLabelValues(stance).Inc()
		}
		r.logger.Debug(
			"report vote recorded",
			"report", reportID.String(),
			"agent", caller.String(),
			"approve", approve,
		)
		r.publish(ReportVotedEventType, ReportVotedEvent{
			Report:        reportID.String(),
			Agent:         caller.String(),
			Approved:      approve,
			Confirmations: report.Confirmations,
			Rejections:    report.Rejections,
		})
		if finalized {
			r.reportFinalized(report)
		}
	})
	if err != nil {
		return nil, r.fail(op, err)
	}
	return report, nil
}
