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

func (d *Database) GetReport(
	reportID types.Identity,
	txn *Txn,
) (*models.Report, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.metadata.GetReport(reportID.Bytes(), txn.Metadata())
}

func (d *Database) CreateReport(report *models.Report, txn *Txn) error {
	if txn == nil {
		return d.Transaction(true).Do(func(txn *Txn) error {
			return d.metadata.CreateReport(report, txn.Metadata())
		})
	}
	return d.metadata.CreateReport(report, txn.Metadata())
}

func (d *Database) UpdateReport(report *models.Report, txn *Txn) error {
	if txn == nil {
		return d.Transaction(true).Do(func(txn *Txn) error {
			return d.metadata.UpdateReport(report, txn.Metadata())
		})
	}
	return d.metadata.UpdateReport(report, txn.Metadata())
}

// GetReportsByProgram returns every report filed against a program, newest first
func (d *Database) GetReportsByProgram(
	program types.Identity,
	txn *Txn,
) ([]models.Report, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.metadata.GetReportsByProgram(program.Bytes(), txn.Metadata())
}
