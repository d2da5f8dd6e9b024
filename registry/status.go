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
	"github.com/blinklabs-io/nile/database/models"
)

type ReportStatus int

const (
	ReportStatusOpen ReportStatus = iota
	ReportStatusAccepted
	ReportStatusRejected
)

func (s ReportStatus) String() string {
	switch s {
	case ReportStatusOpen:
		return "open"
	case ReportStatusAccepted:
		return "accepted"
	case ReportStatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ReportStatusOf derives the lifecycle state of a report from its flags
func ReportStatusOf(report *models.Report) ReportStatus {
	switch {
	case !report.Finalized:
		return ReportStatusOpen
	case report.Accepted:
		return ReportStatusAccepted
	default:
		return ReportStatusRejected
	}
}

// applyVote tallies one vote on an open report and finalizes it when a
// threshold is crossed. Acceptance is checked before rejection. It returns
// true if this vote finalized the report.
func applyVote(report *models.Report, approve bool, now int64) (bool, error) {
	var err error
	if approve {
		report.Confirmations, err = incUint8(report.Confirmations)
	} else {
		report.Rejections, err = incUint8(report.Rejections)
	}
	if err != nil {
		return false, err
	}
	switch {
	case report.Confirmations >= report.RequiredQuorum:
		report.Finalized = true
		report.Accepted = true
	case report.Rejections > report.RequiredQuorum/2:
		report.Finalized = true
		report.Accepted = false
	default:
		return false, nil
	}
	report.FinalizedAt = now
	return true, nil
}
