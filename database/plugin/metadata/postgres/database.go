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

package postgres

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/blinklabs-io/nile/database/plugin/metadata/internal/gormstore"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MetadataStorePostgres stores registry records in Postgres.
type MetadataStorePostgres struct {
	*gormstore.Store
	promRegistry prometheus.Registerer
	db           *gorm.DB
	logger       *slog.Logger

	host     string
	port     uint
	user     string
	password string
	database string
	sslMode  string
	timeZone string
	dsn      string
}

// NewWithOptions creates a new database with options. The connection is
// opened by Start().
func NewWithOptions(opts ...PostgresOptionFunc) (*MetadataStorePostgres, error) {
	db := &MetadataStorePostgres{}
	for _, opt := range opts {
		opt(db)
	}
	// Set defaults after options are applied
	if db.host == "" {
		db.host = "localhost"
	}
	if db.port == 0 {
		db.port = 5432
	}
	if db.user == "" {
		db.user = "postgres"
	}
	if db.database == "" {
		db.database = "postgres"
	}
	if db.sslMode == "" {
		db.sslMode = "disable"
	}
	if db.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		db.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return db, nil
}

// buildDSN returns the explicit DSN if set, otherwise one assembled from the
// individual connection options
func (d *MetadataStorePostgres) buildDSN() string {
	if dsn := strings.TrimSpace(d.dsn); dsn != "" {
		return dsn
	}
	parts := []string{
		"host=" + d.host,
		"user=" + d.user,
		"password=" + d.password,
		"dbname=" + d.database,
		"port=" + strconv.FormatUint(uint64(d.port), 10),
		"sslmode=" + d.sslMode,
	}
	if d.timeZone != "" {
		parts = append(parts, "TimeZone="+d.timeZone)
	}
	return strings.Join(parts, " ")
}

// Start implements the plugin.Plugin interface
func (d *MetadataStorePostgres) Start() error {
	metadataDb, err := gorm.Open(
		postgres.Open(d.buildDSN()),
		&gorm.Config{
			Logger:                 gormlogger.Discard,
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		},
	)
	if err != nil {
		return err
	}
	d.logger.Info(
		"connected to postgres metadata store",
		"component", "database",
		"host", d.host,
		"port", d.port,
		"database", d.database,
	)
	d.db = metadataDb
	// Configure connection pool
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	store, err := gormstore.New(d.db, d.logger)
	if err != nil {
		return err
	}
	d.Store = store
	return nil
}

// Stop implements the plugin.Plugin interface
func (d *MetadataStorePostgres) Stop() error {
	return d.Close()
}

// Close gets the database handle from our MetadataStore and closes it
func (d *MetadataStorePostgres) Close() error {
	// Guard against nil DB handle (e.g., if Start() failed or was never called)
	if d.db == nil {
		return nil
	}
	db, err := d.db.DB()
	if err != nil {
		return err
	}
	d.db = nil
	return db.Close()
}
