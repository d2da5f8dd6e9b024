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

package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/blinklabs-io/nile/database/plugin/blob/internal/objectstore"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// BlobStoreGCS stores data in a Google Cloud Storage bucket
type BlobStoreGCS struct {
	*objectstore.Store
	promRegistry    prometheus.Registerer
	logger          *slog.Logger
	client          *storage.Client
	bucket          *storage.BucketHandle
	bucketName      string
	prefix          string
	credentialsFile string
}

// New creates a new GCS-backed blob store. The location must be
// "gcs://bucket" or "gcs://bucket/prefix".
func New(
	location string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (*BlobStoreGCS, error) {
	path, _ := strings.CutPrefix(location, "gcs://")
	bucketName, keyPrefix, _ := strings.Cut(path, "/")
	if !strings.HasPrefix(location, "gcs://") || bucketName == "" {
		return nil, errors.New(
			"gcs blob: bucket not set (expected location='gcs://<bucket>[/prefix]')",
		)
	}
	return NewWithOptions(
		WithBucket(bucketName),
		WithPrefix(keyPrefix),
		WithLogger(logger),
		WithPromRegistry(promRegistry),
	)
}

// NewWithOptions creates a new GCS-backed blob store using options
func NewWithOptions(opts ...BlobStoreGCSOptionFunc) (*BlobStoreGCS, error) {
	db := &BlobStoreGCS{}
	for _, opt := range opts {
		opt(db)
	}
	if db.logger == nil {
		// Create logger to throw away logs
		db.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if db.prefix = strings.Trim(db.prefix, "/"); db.prefix != "" {
		db.prefix += "/"
	}
	return db, nil
}

// ValidateCredentials checks that a configured credentials file exists
func ValidateCredentials(credentialsFile string) error {
	if credentialsFile == "" {
		return nil
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf(
				"GCS credentials file does not exist: %s",
				credentialsFile,
			)
		}
		return fmt.Errorf("GCS credentials file: %w", err)
	}
	return nil
}

// Start implements the plugin.Plugin interface
func (d *BlobStoreGCS) Start() error {
	if d.bucketName == "" {
		return errors.New("gcs blob: bucket not set")
	}
	if err := ValidateCredentials(d.credentialsFile); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var clientOpts []option.ClientOption
	clientOpts = append(clientOpts, storage.WithDisabledClientMetrics())
	if d.credentialsFile != "" {
		clientOpts = append(
			clientOpts,
			option.WithCredentialsFile(d.credentialsFile),
		)
	}
	client, err := storage.NewGRPCClient(ctx, clientOpts...)
	if err != nil {
		return fmt.Errorf(
			"gcs blob: failed in creating storage client: %w",
			err,
		)
	}
	d.client = client
	d.bucket = client.Bucket(d.bucketName)
	store, err := objectstore.New(objectstore.Config{
		Client:       &gcsClient{client: client, bucket: d.bucket},
		Logger:       d.logger,
		PromRegistry: d.promRegistry,
		Prefix:       d.prefix,
		Backend:      "gcs",
	})
	if err != nil {
		_ = client.Close()
		return err
	}
	d.Store = store
	return nil
}

// Stop implements the plugin.Plugin interface
func (d *BlobStoreGCS) Stop() error {
	return d.Close()
}

// Close closes the GCS client
func (d *BlobStoreGCS) Close() error {
	if d.Store == nil {
		return nil
	}
	return d.Store.Close()
}

// Client returns the GCS client, or nil before Start
func (d *BlobStoreGCS) Client() *storage.Client {
	return d.client
}

// Bucket returns the bucket handle, or nil before Start
func (d *BlobStoreGCS) Bucket() *storage.BucketHandle {
	return d.bucket
}

// gcsClient adapts a bucket handle to the object store client contract
type gcsClient struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

func (c *gcsClient) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := c.bucket.Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, objectstore.ErrObjectNotFound
		}
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (c *gcsClient) Put(ctx context.Context, key string, value []byte) error {
	w := c.bucket.Object(key).NewWriter(ctx)
	if _, err := w.Write(value); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (c *gcsClient) Delete(ctx context.Context, key string) error {
	err := c.bucket.Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return objectstore.ErrObjectNotFound
	}
	return err
}

func (c *gcsClient) List(ctx context.Context, prefix string) ([]string, error) {
	query := &storage.Query{Prefix: prefix}
	if err := query.SetAttrSelection([]string{"Name"}); err != nil {
		return nil, err
	}
	it := c.bucket.Objects(ctx, query)
	var keys []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

func (c *gcsClient) Close() error {
	return c.client.Close()
}
