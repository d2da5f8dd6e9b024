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

func (d *Database) GetProgram(
	program types.Identity,
	txn *Txn,
) (*models.Program, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.metadata.GetProgram(program.Bytes(), txn.Metadata())
}

func (d *Database) CreateProgram(program *models.Program, txn *Txn) error {
	if txn == nil {
		return d.Transaction(true).Do(func(txn *Txn) error {
			return d.metadata.CreateProgram(program, txn.Metadata())
		})
	}
	return d.metadata.CreateProgram(program, txn.Metadata())
}

func (d *Database) UpdateProgram(program *models.Program, txn *Txn) error {
	if txn == nil {
		return d.Transaction(true).Do(func(txn *Txn) error {
			return d.metadata.UpdateProgram(program, txn.Metadata())
		})
	}
	return d.metadata.UpdateProgram(program, txn.Metadata())
}
