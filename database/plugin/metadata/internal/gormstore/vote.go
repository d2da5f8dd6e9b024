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

// GetVoteMarker returns the vote marker for an agent on a report, or nil if
// the agent has not voted
func (s *Store) GetVoteMarker(
	reportID []byte,
	agent []byte,
	txn types.Txn,
) (*models.VoteMarker, error) {
	db, err := s.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.VoteMarker{}
	found, err := first(db, ret, "report_id = ? AND agent = ?", reportID, agent)
	if err != nil {
		return nil, fmt.Errorf("get vote marker: %w", err)
	}
	if !found {
		return nil, nil
	}
	return ret, nil
}

// CreateVoteMarker creates a vote marker. It fails with
// types.ErrRecordExists if the agent already voted on the report.
func (s *Store) CreateVoteMarker(
	marker *models.VoteMarker,
	txn types.Txn,
) error {
	db, err := s.resolveDB(txn)
	if err != nil {
		return err
	}
	return createOnce(
		db,
		marker,
		"report_id = ? AND agent = ?",
		marker.ReportID,
		marker.Agent,
	)
}

// GetVoteMarkersByReport returns the markers for a report ordered by agent
func (s *Store) GetVoteMarkersByReport(
	reportID []byte,
	txn types.Txn,
) ([]models.VoteMarker, error) {
	db, err := s.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	var ret []models.VoteMarker
	result := db.Where("report_id = ?", reportID).
		Order("agent ASC").
		Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf("get vote markers: %w", result.Error)
	}
	return ret, nil
}
