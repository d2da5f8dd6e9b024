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

package sqlite

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blinklabs-io/nile/database/plugin/metadata/internal/gormstore"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const metadataFileName = "metadata.sqlite"

// MetadataStoreSqlite is a SQLite-based implementation of the metadata store.
// It keeps the registry's authority, agent, program and report records.
type MetadataStoreSqlite struct {
	*gormstore.Store
	promRegistry prometheus.Registerer
	logger       *slog.Logger
	timerVacuum  *time.Timer
	timerMutex   sync.Mutex
	dataDir      string
	closed       bool
	vacuumWG     sync.WaitGroup
}

// New creates a SQLite metadata store. Uses in-memory database if dataDir is empty.
func New(
	dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (*MetadataStoreSqlite, error) {
	return NewWithOptions(
		WithDataDir(dataDir),
		WithLogger(logger),
		WithPromRegistry(promRegistry),
	)
}

// NewWithOptions creates a SQLite metadata store from option funcs
func NewWithOptions(opts ...SqliteOptionFunc) (*MetadataStoreSqlite, error) {
	db := &MetadataStoreSqlite{}
	for _, opt := range opts {
		opt(db)
	}
	if db.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		db.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	var dsn string
	if db.dataDir == "" {
		// Each in-memory store gets its own named database. cache=shared lets
		// the connection pool see the same data.
		dsn = fmt.Sprintf(
			"file:nile-%s?mode=memory&cache=shared",
			uuid.NewString(),
		)
	} else {
		// Make sure that we can read data dir, and create if it doesn't exist
		if _, err := os.Stat(db.dataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			// Create data directory
			if err := os.MkdirAll(db.dataDir, fs.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		metadataDbPath := filepath.Join(
			db.dataDir,
			metadataFileName,
		)
		// WAL journal mode, wait on a locked database rather than failing
		metadataConnOpts := "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=cache_size(-50000)"
		dsn = fmt.Sprintf("file:%s?%s", metadataDbPath, metadataConnOpts)
	}
	metadataDb, err := gorm.Open(
		sqlite.Open(dsn),
		&gorm.Config{
			Logger:                 gormlogger.Discard,
			SkipDefaultTransaction: true,
		},
	)
	if err != nil {
		return nil, err
	}
	store, err := gormstore.New(metadataDb, db.logger)
	if err != nil {
		if sqlDB, dbErr := metadataDb.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	db.Store = store
	// Schedule daily database vacuum to free unused space
	db.scheduleDailyVacuum()
	return db, nil
}

func (d *MetadataStoreSqlite) runVacuum() error {
	d.timerMutex.Lock()
	if d.dataDir == "" || d.closed {
		d.timerMutex.Unlock()
		return nil
	}
	// Track this vacuum operation while we know the store is open
	d.vacuumWG.Add(1)
	d.timerMutex.Unlock()
	defer d.vacuumWG.Done()

	if result := d.DB().Exec("VACUUM"); result.Error != nil {
		return result.Error
	}
	return nil
}

// scheduleDailyVacuum schedules a daily vacuum operation
func (d *MetadataStoreSqlite) scheduleDailyVacuum() {
	d.timerMutex.Lock()
	defer d.timerMutex.Unlock()
	if d.closed || d.dataDir == "" {
		return
	}
	if d.timerVacuum != nil {
		d.timerVacuum.Stop()
	}
	daily := time.Duration(24) * time.Hour
	f := func() {
		d.logger.Debug(
			"running vacuum on sqlite metadata database",
			"component", "database",
		)
		// schedule next run
		defer d.scheduleDailyVacuum()
		if err := d.runVacuum(); err != nil {
			d.logger.Error(
				"failed to free unused space in metadata store",
				"component", "database",
				"error", err,
			)
		}
	}
	d.timerVacuum = time.AfterFunc(daily, f)
}

// Start implements the plugin.Plugin interface
func (d *MetadataStoreSqlite) Start() error {
	// Database is already opened in New(), so this is a no-op
	return nil
}

// Stop implements the plugin.Plugin interface
func (d *MetadataStoreSqlite) Stop() error {
	return d.Close()
}

// Close shuts down the database connection and stops background processes.
func (d *MetadataStoreSqlite) Close() error {
	d.timerMutex.Lock()
	if d.closed {
		d.timerMutex.Unlock()
		return nil
	}
	d.closed = true
	if d.timerVacuum != nil {
		d.timerVacuum.Stop()
		d.timerVacuum = nil
	}
	d.timerMutex.Unlock()

	// Wait for any in-flight vacuum operations to complete
	d.vacuumWG.Wait()

	// get DB handle from gorm.DB
	db, err := d.DB().DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	return db.Close()
}
