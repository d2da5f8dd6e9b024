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

// GetProgram returns the program profile for the given key, or nil if none exists
func (s *Store) GetProgram(
	program []byte,
	txn types.Txn,
) (*models.Program, error) {
	db, err := s.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Program{}
	found, err := first(db, ret, "program = ?", program)
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	if !found {
		return nil, nil
	}
	return ret, nil
}

// CreateProgram creates a program profile. It fails with
// types.ErrRecordExists if the program key is already present.
func (s *Store) CreateProgram(program *models.Program, txn types.Txn) error {
	db, err := s.resolveDB(txn)
	if err != nil {
		return err
	}
	return createOnce(db, program, "program = ?", program.Program)
}

func (s *Store) UpdateProgram(program *models.Program, txn types.Txn) error {
	db, err := s.resolveDB(txn)
	if err != nil {
		return err
	}
	if err := save(db, program); err != nil {
		return fmt.Errorf("update program: %w", err)
	}
	return nil
}
