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

// Package gormstore holds the record logic shared by the gorm-backed metadata
// plugins. Each plugin opens its own *gorm.DB and embeds a Store.
package gormstore

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/nile/database/models"
	"github.com/blinklabs-io/nile/database/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/opentelemetry/tracing"
)

// gormTxn wraps a gorm transaction and implements types.Txn
type gormTxn struct {
	store    *Store
	db       *gorm.DB
	beginErr error
	finished bool
}

func (t *gormTxn) Commit() error {
	if t.beginErr != nil {
		return t.beginErr
	}
	if t.finished {
		return nil
	}
	if result := t.db.Commit(); result.Error != nil {
		return result.Error
	}
	t.finished = true
	return nil
}

func (t *gormTxn) Rollback() error {
	if t.beginErr != nil {
		return t.beginErr
	}
	if t.finished {
		return nil
	}
	if result := t.db.Rollback(); result.Error != nil {
		return result.Error
	}
	t.finished = true
	return nil
}

type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// New wraps an opened gorm handle, installs query tracing and applies schema migrations
func New(db *gorm.DB, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s := &Store{
		db:     db,
		logger: logger,
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}
	s.logger.Debug(
		fmt.Sprintf("creating table: %#v", &CommitTimestamp{}),
		"component", "database",
	)
	if err := db.AutoMigrate(&CommitTimestamp{}); err != nil {
		return nil, err
	}
	for _, model := range models.MigrateModels {
		s.logger.Debug(
			fmt.Sprintf("creating table: %#v", model),
			"component", "database",
		)
		if err := db.AutoMigrate(model); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DB returns the underlying GORM database handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction begins a new database transaction. A failure to begin is
// reported by the returned handle's Commit and Rollback.
func (s *Store) Transaction() types.Txn {
	tx := s.db.Begin()
	if tx.Error != nil {
		return &gormTxn{store: s, beginErr: tx.Error}
	}
	return &gormTxn{store: s, db: tx}
}

// resolveDB returns the gorm handle to run queries against. A nil txn uses
// the base handle outside of any transaction.
func (s *Store) resolveDB(txn types.Txn) (*gorm.DB, error) {
	if txn == nil {
		return s.db, nil
	}
	gTxn, ok := txn.(*gormTxn)
	if !ok {
		return nil, types.ErrTxnWrongType
	}
	if gTxn.store != s {
		return nil, errors.New("transaction from different store")
	}
	if gTxn.beginErr != nil {
		return nil, gTxn.beginErr
	}
	if gTxn.finished {
		return nil, types.ErrTxnFinished
	}
	return gTxn.db, nil
}

// createOnce inserts a record unless one already matches the key condition
func createOnce(db *gorm.DB, record any, query string, args ...any) error {
	var count int64
	if result := db.Model(record).Where(query, args...).Count(&count); result.Error != nil {
		return result.Error
	}
	if count > 0 {
		return types.ErrRecordExists
	}
	return db.Create(record).Error
}

// first loads a single record, returning (false, nil) when nothing matches
func first(db *gorm.DB, dest any, query string, args ...any) (bool, error) {
	result := db.Where(query, args...).First(dest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// save updates every column of an existing record by primary key
func save(db *gorm.DB, record any) error {
	return db.Omit(clause.Associations).Save(record).Error
}
