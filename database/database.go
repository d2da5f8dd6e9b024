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
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/blinklabs-io/nile/database/plugin"
	"github.com/blinklabs-io/nile/database/plugin/blob"
	"github.com/blinklabs-io/nile/database/plugin/metadata"
	"github.com/prometheus/client_golang/prometheus"

	// Register storage plugins
	_ "github.com/blinklabs-io/nile/database/plugin/blob/aws"
	_ "github.com/blinklabs-io/nile/database/plugin/blob/badger"
	_ "github.com/blinklabs-io/nile/database/plugin/blob/gcs"
	_ "github.com/blinklabs-io/nile/database/plugin/metadata/mysql"
	_ "github.com/blinklabs-io/nile/database/plugin/metadata/postgres"
	_ "github.com/blinklabs-io/nile/database/plugin/metadata/sqlite"
)

const (
	DefaultBlobPlugin     = "badger"
	DefaultMetadataPlugin = "sqlite"
)

// Config holds the settings used to open a Database. An empty DataDir opens
// in-memory stores.
type Config struct {
	Logger         *slog.Logger
	PromRegistry   prometheus.Registerer
	Clock          clock.Clock
	DataDir        string
	BlobPlugin     string
	MetadataPlugin string
}

// Database pairs a blob store with a metadata store and keeps their commit
// timestamps in step
type Database struct {
	logger   *slog.Logger
	clock    clock.Clock
	blob     blob.BlobStore
	metadata metadata.MetadataStore
	dataDir  string
}

// Blob returns the underling blob store instance
func (d *Database) Blob() blob.BlobStore {
	return d.blob
}

// DataDir returns the path to the data directory used for storage
func (d *Database) DataDir() string {
	return d.dataDir
}

// Logger returns the logger instance
func (d *Database) Logger() *slog.Logger {
	return d.logger
}

// Metadata returns the underlying metadata store instance
func (d *Database) Metadata() metadata.MetadataStore {
	return d.metadata
}

// Transaction starts a new database transaction and returns a handle to it
func (d *Database) Transaction(readWrite bool) *Txn {
	return NewTxn(d, readWrite)
}

// Close cleans up the database connections
func (d *Database) Close() error {
	var err error
	// Close metadata
	if d.metadata != nil {
		err = errors.Join(err, d.metadata.Close())
	}
	// Close blob
	if d.blob != nil {
		err = errors.Join(err, d.blob.Close())
	}
	return err
}

func (d *Database) init() error {
	// Check commit timestamp
	if err := d.checkCommitTimestamp(); err != nil {
		return err
	}
	return nil
}

// New creates a new database instance with optional persistence using the
// provided data directory
func New(config *Config) (*Database, error) {
	if config == nil {
		config = &Config{}
	}
	logger := config.Logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.New()
	}
	blobPlugin := config.BlobPlugin
	if blobPlugin == "" {
		blobPlugin = DefaultBlobPlugin
	}
	metadataPlugin := config.MetadataPlugin
	if metadataPlugin == "" {
		metadataPlugin = DefaultMetadataPlugin
	}
	// Point file-backed plugins at our data dir. Plugins without a data-dir
	// option ignore this.
	if err := plugin.SetPluginOption(
		plugin.PluginTypeBlob,
		blobPlugin,
		"data-dir",
		config.DataDir,
	); err != nil {
		return nil, err
	}
	if err := plugin.SetPluginOption(
		plugin.PluginTypeMetadata,
		metadataPlugin,
		"data-dir",
		config.DataDir,
	); err != nil {
		return nil, err
	}
	env := plugin.Env{
		Logger:       logger,
		PromRegistry: config.PromRegistry,
	}
	blobDb, err := blob.New(blobPlugin, env)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}
	metadataDb, err := metadata.New(metadataPlugin, env)
	if err != nil {
		_ = blobDb.Close()
		return nil, fmt.Errorf("open metadata store: %w", err)
	}
	db := &Database{
		logger:   logger,
		clock:    clk,
		blob:     blobDb,
		metadata: metadataDb,
		dataDir:  config.DataDir,
	}
	if err := db.init(); err != nil {
		// Database is available for recovery, so return it with error
		return db, err
	}
	return db, nil
}
