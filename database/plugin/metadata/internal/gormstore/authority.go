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

// GetAuthority returns the authority singleton, or nil if it has not been created
func (s *Store) GetAuthority(txn types.Txn) (*models.Authority, error) {
	db, err := s.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Authority{}
	found, err := first(db, ret, "id = ?", models.AuthorityRowID)
	if err != nil {
		return nil, fmt.Errorf("get authority: %w", err)
	}
	if !found {
		return nil, nil
	}
	return ret, nil
}

// CreateAuthority creates the authority singleton. It fails with
// types.ErrRecordExists if it already exists.
func (s *Store) CreateAuthority(
	authority *models.Authority,
	txn types.Txn,
) error {
	db, err := s.resolveDB(txn)
	if err != nil {
		return err
	}
	authority.ID = models.AuthorityRowID
	return createOnce(db, authority, "id = ?", models.AuthorityRowID)
}

func (s *Store) UpdateAuthority(
	authority *models.Authority,
	txn types.Txn,
) error {
	db, err := s.resolveDB(txn)
	if err != nil {
		return err
	}
	if err := save(db, authority); err != nil {
		return fmt.Errorf("update authority: %w", err)
	}
	return nil
}
