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

// GetReport returns the report with the given id, or nil if none exists
func (s *Store) GetReport(
	reportID []byte,
	txn types.Txn,
) (*models.Report, error) {
	db, err := s.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Report{}
	found, err := first(db, ret, "report_id = ?", reportID)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if !found {
		return nil, nil
	}
	return ret, nil
}

// CreateReport creates a report. It fails with types.ErrRecordExists if the
// report id is already present.
func (s *Store) CreateReport(report *models.Report, txn types.Txn) error {
	db, err := s.resolveDB(txn)
	if err != nil {
		return err
	}
	return createOnce(db, report, "report_id = ?", report.ReportID)
}

func (s *Store) UpdateReport(report *models.Report, txn types.Txn) error {
	db, err := s.resolveDB(txn)
	if err != nil {
		return err
	}
	if err := save(db, report); err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	return nil
}

// GetReportsByProgram returns all reports about a program, newest first
func (s *Store) GetReportsByProgram(
	program []byte,
	txn types.Txn,
) ([]models.Report, error) {
	db, err := s.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	var ret []models.Report
	result := db.Where("program = ?", program).
		Order("sequence DESC").
		Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf("get reports: %w", result.Error)
	}
	return ret, nil
}
