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

package aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/blinklabs-io/nile/database/plugin/blob/internal/objectstore"
	"github.com/prometheus/client_golang/prometheus"
)

// BlobStoreS3 stores data in an AWS S3 bucket, or any S3 compatible service
// reachable at a custom endpoint
type BlobStoreS3 struct {
	*objectstore.Store
	promRegistry prometheus.Registerer
	logger       *slog.Logger
	client       *s3.Client
	bucket       string
	prefix       string
	region       string
	endpoint     string
	timeout      time.Duration
}

// New creates a new S3-backed blob store. The location must be
// "s3://bucket" or "s3://bucket/prefix".
func New(
	location string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (*BlobStoreS3, error) {
	path, ok := strings.CutPrefix(location, "s3://")
	if !ok {
		return nil, errors.New(
			"s3 blob: expected location='s3://<bucket>[/prefix]'",
		)
	}
	bucket, keyPrefix, _ := strings.Cut(path, "/")
	if bucket == "" {
		return nil, errors.New("s3 blob: bucket not set")
	}
	return NewWithOptions(
		WithBucket(bucket),
		WithPrefix(keyPrefix),
		WithLogger(logger),
		WithPromRegistry(promRegistry),
	)
}

// NewWithOptions creates a new S3-backed blob store using options
func NewWithOptions(opts ...BlobStoreS3OptionFunc) (*BlobStoreS3, error) {
	db := &BlobStoreS3{}
	for _, opt := range opts {
		opt(db)
	}
	if db.logger == nil {
		db.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	db.prefix = normalizePrefix(db.prefix)
	// AWS config loading happens in Start()
	return db, nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

// Start implements the plugin.Plugin interface
func (d *BlobStoreS3) Start() error {
	if d.bucket == "" {
		return errors.New("s3 blob: bucket not set")
	}
	timeout := d.timeout
	if timeout == 0 {
		timeout = objectstore.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("s3 blob: load default AWS config: %w", err)
	}
	if d.region != "" {
		awsCfg.Region = d.region
	}
	d.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if d.endpoint != "" {
			o.BaseEndpoint = aws.String(d.endpoint)
			// Most S3 compatible services don't support virtual hosted buckets
			o.UsePathStyle = true
		}
	})
	store, err := objectstore.New(objectstore.Config{
		Client:       &s3Client{client: d.client, bucket: d.bucket},
		Logger:       d.logger,
		PromRegistry: d.promRegistry,
		Prefix:       d.prefix,
		Timeout:      timeout,
		Backend:      "s3",
	})
	if err != nil {
		return err
	}
	d.Store = store
	return nil
}

// Stop implements the plugin.Plugin interface
func (d *BlobStoreS3) Stop() error {
	return d.Close()
}

func (d *BlobStoreS3) Close() error {
	if d.Store == nil {
		return nil
	}
	return d.Store.Close()
}

// Client returns the S3 client, or nil before Start
func (d *BlobStoreS3) Client() *s3.Client {
	return d.client
}

func (d *BlobStoreS3) Bucket() string {
	return d.bucket
}

// s3Client adapts the S3 API to the object store client contract
type s3Client struct {
	client *s3.Client
	bucket string
}

func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
		return true
	}
	var noSuchKey *s3types.NoSuchKey
	return errors.As(err, &noSuchKey)
}

func (c *s3Client) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, objectstore.ErrObjectNotFound
		}
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (c *s3Client) Put(ctx context.Context, key string, value []byte) error {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(value),
	})
	return err
}

// Delete succeeds for missing objects, as S3 does
func (c *s3Client) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (c *s3Client) List(ctx context.Context, prefix string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	paginator := s3.NewListObjectsV2Paginator(c.client, input)
	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

func (c *s3Client) Close() error {
	return nil
}
