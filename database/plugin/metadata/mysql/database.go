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

package mysql

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/blinklabs-io/nile/database/plugin/metadata/internal/gormstore"
	"github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MySQL error returned when the selected database does not exist
const errUnknownDatabase = 1049

// MetadataStoreMysql stores registry records in MySQL.
type MetadataStoreMysql struct {
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
func NewWithOptions(opts ...MysqlOptionFunc) (*MetadataStoreMysql, error) {
	db := &MetadataStoreMysql{}
	for _, opt := range opts {
		opt(db)
	}
	// Set defaults after options are applied
	if db.host == "" {
		db.host = "localhost"
	}
	if db.port == 0 {
		db.port = 3306
	}
	if db.user == "" {
		db.user = "root"
	}
	if db.database == "" {
		db.database = "nile"
	}
	if db.timeZone == "" {
		db.timeZone = "UTC"
	}
	if db.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		db.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return db, nil
}

// buildDSN returns the DSN to connect with and the database name it selects
func (d *MetadataStoreMysql) buildDSN() (string, string) {
	if dsn := strings.TrimSpace(d.dsn); dsn != "" {
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return dsn, d.database
		}
		return dsn, cfg.DBName
	}
	cfg := mysql.NewConfig()
	cfg.User = d.user
	cfg.Passwd = d.password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf(
		"%s:%s",
		d.host,
		strconv.FormatUint(uint64(d.port), 10),
	)
	cfg.DBName = d.database
	cfg.ParseTime = true
	cfg.AllowNativePasswords = true
	if d.timeZone != "" {
		loc, err := time.LoadLocation(d.timeZone)
		if err != nil {
			loc = time.UTC
		}
		cfg.Loc = loc
	}
	if d.sslMode != "" {
		cfg.TLSConfig = d.sslMode
	}
	return cfg.FormatDSN(), d.database
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}
}

// Start implements the plugin.Plugin interface
func (d *MetadataStoreMysql) Start() error {
	dsn, dbName := d.buildDSN()
	metadataDb, err := gorm.Open(gormmysql.Open(dsn), gormConfig())
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if !errors.As(err, &mysqlErr) || mysqlErr.Number != errUnknownDatabase {
			return err
		}
		if err := d.createDatabase(dsn, dbName); err != nil {
			return fmt.Errorf("create database %s: %w", dbName, err)
		}
		metadataDb, err = gorm.Open(gormmysql.Open(dsn), gormConfig())
		if err != nil {
			return err
		}
	}
	d.logger.Info(
		"connected to mysql metadata store",
		"component", "database",
		"host", d.host,
		"port", d.port,
		"database", dbName,
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

// createDatabase connects without a database selected and creates dbName
func (d *MetadataStoreMysql) createDatabase(dsn string, dbName string) error {
	if dbName == "" {
		return errors.New("no database name")
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return err
	}
	cfg.DBName = ""
	adminDb, err := gorm.Open(gormmysql.Open(cfg.FormatDSN()), gormConfig())
	if err != nil {
		return err
	}
	sqlAdminDb, err := adminDb.DB()
	if err != nil {
		return err
	}
	defer sqlAdminDb.Close()
	return adminDb.Exec(
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName),
	).Error
}

// Stop implements the plugin.Plugin interface
func (d *MetadataStoreMysql) Stop() error {
	return d.Close()
}

// Close gets the database handle from our MetadataStore and closes it
func (d *MetadataStoreMysql) Close() error {
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
