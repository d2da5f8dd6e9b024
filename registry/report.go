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

// SubmitReport files an incident report about a program. The submitter's
// confirmation is counted immediately, and the quorum is frozen from the
// current agent count. The program does not need to be registered.
func (r *Registry) SubmitReport(
	ctx context.Context,
	caller Caller,
	programID types.Identity,
	eventType string,
	headline string,
	impact int8,
) (*models.Report, error) {
	const op = "submit report"
	if len(eventType) > MaxEventTypeLength {
		return nil, r.fail(op, ErrEventTypeTooLong)
	}
	if len(headline) > MaxHeadlineLength {
		return nil, r.fail(op, ErrHeadlineTooLong)
	}
	if impact < MinImpactScore || impact > MaxImpactScore {
		return nil, r.fail(op, ErrImpactOutOfRange)
	}
	var report *models.Report
	err := r.update(ctx, func(txn *database.Txn) error {
		agent, err := r.activeAgent(caller, txn)
		if err != nil {
			return err
		}
		authority, err := r.db.GetAuthority(txn)
		if err != nil {
			return err
		}
		if authority == nil {
			return ErrNotInitialized
		}
		quorum, err := RequiredQuorum(authority.AgentCount)
		if err != nil {
			return err
		}
		sequence := authority.TotalReports
		reportID := types.ReportID(programID, uint64(sequence))
		now := r.now()
		report = &models.Report{
			ReportID:       reportID.Bytes(),
			Program:        programID.Bytes(),
			Submitter:      caller.Bytes(),
			EventType:      eventType,
			Headline:       headline,
			Sequence:       sequence,
			SubmittedAt:    now,
			ImpactScore:    impact,
			Confirmations:  1,
			RequiredQuorum: quorum,
		}
		// A lone agent's own confirmation is enough
		if report.Confirmations >= quorum {
			report.Finalized = true
			report.Accepted = true
			report.FinalizedAt = now
		}
		if agent.TotalReports, err = incUint64(agent.TotalReports); err != nil {
			return err
		}
		if err := award(agent, PointsPerReport); err != nil {
			return err
		}
		if authority.TotalReports, err = incUint64(sequence); err != nil {
			return err
		}
		if err := r.db.CreateReport(report, txn); err != nil {
			if errors.Is(err, types.ErrRecordExists) {
				// The sequence is unique, so an id collision means corrupt state
				return errors.New("report id already in use")
			}
			return err
		}
		if err := r.db.UpdateAgent(agent, txn); err != nil {
			return err
		}
		return r.db.UpdateAuthority(authority, txn)
	}, func() {
		reportID := report.Identity()
		if r.metrics != nil {
			r.metrics.reports.Inc()
		}
		r.logger.Info(
			"report submitted",
			"report", reportID.String(),
			"program", programID.String(),
			"submitter", caller.String(),
			"quorum", report.RequiredQuorum,
		)
		r.publish(ReportSubmittedEventType, ReportSubmittedEvent{
			Report:         reportID.String(),
			Program:        programID.String(),
			Submitter:      caller.String(),
			EventType:      eventType,
			ImpactScore:    impact,
			RequiredQuorum: report.RequiredQuorum,
		})
		if report.Finalized {
			r.reportFinalized(report)
		}
	})
	if err != nil {
		return nil, r.fail(op, err)
	}
	return report, nil
}

// reportFinalized records and announces a report reaching a decision
func (r *Registry) reportFinalized(report *models.Report) {
	status := ReportStatusOf(report)
	if r.metrics != nil {
		r.metrics.finalized.WithLabelValues(status.String()).Inc()
	}
	reportID := report.Identity()
	programID := report.ProgramIdentity()
	r.logger.Info(
		"report finalized",
		"report", reportID.String(),
		"status", status.String(),
		"confirmations", report.Confirmations,
		"rejections", report.Rejections,
	)
	r.publish(ReportFinalizedEventType, ReportFinalizedEvent{
		Report:   reportID.String(),
		Program:  programID.String(),
		Accepted: report.Accepted,
	})
}
