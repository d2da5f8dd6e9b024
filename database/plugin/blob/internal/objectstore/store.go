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

// Package objectstore implements the blob store contract on top of a remote
// object bucket. Writes are staged in the transaction and only sent to the
// bucket on commit, so a rolled back transaction leaves no objects behind.
package objectstore

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"maps"
	"math/big"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/blinklabs-io/nile/database/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	DefaultTimeout = 60 * time.Second

	commitTimestampBlobKey = "metadata_commit_timestamp"
	metricNamePrefix       = "nile_database_blob_"
)

// ErrObjectNotFound is returned by a Client for a missing object
var ErrObjectNotFound = errors.New("object not found")

// Client is the minimal set of bucket operations a backend provides. Keys
// are full object names.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

type Config struct {
	Client       Client
	Logger       *slog.Logger
	PromRegistry prometheus.Registerer
	// Prepended to every object name
	Prefix  string
	Timeout time.Duration
	// Backend name used in log lines and metric labels
	Backend string
}

type storeMetrics struct {
	ops   *prometheus.CounterVec
	bytes *prometheus.CounterVec
}

type Store struct {
	client  Client
	logger  *slog.Logger
	metrics *storeMetrics
	prefix  string
	backend string
	timeout time.Duration
	closeMu sync.Mutex
	closed  bool
}

func New(cfg Config) (*Store, error) {
	if cfg.Client == nil {
		return nil, types.ErrBlobStoreUnavailable
	}
	s := &Store{
		client:  cfg.Client,
		logger:  cfg.Logger,
		prefix:  cfg.Prefix,
		backend: cfg.Backend,
		timeout: cfg.Timeout,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s.logger = s.logger.With("component", "database", "backend", s.backend)
	if s.timeout == 0 {
		s.timeout = DefaultTimeout
	}
	if cfg.PromRegistry != nil {
		factory := promauto.With(cfg.PromRegistry)
		s.metrics = &storeMetrics{
			ops: factory.NewCounterVec(
				prometheus.CounterOpts{
					Name: metricNamePrefix + "object_ops_total",
					Help: "object store operations, by backend and operation",
				},
				[]string{"backend", "op"},
			),
			bytes: factory.NewCounterVec(
				prometheus.CounterOpts{
					Name: metricNamePrefix + "object_bytes_total",
					Help: "object store bytes transferred, by backend and direction",
				},
				[]string{"backend", "direction"},
			),
		}
	}
	return s, nil
}

func (s *Store) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *Store) observe(op string, direction string, size int) {
	if s.metrics == nil {
		return
	}
	s.metrics.ops.WithLabelValues(s.backend, op).Inc()
	if direction != "" {
		s.metrics.bytes.WithLabelValues(s.backend, direction).Add(float64(size))
	}
}

// objectName maps a binary blob key onto a printable object name. Hex keeps
// the byte ordering of keys, so prefix listing still works.
func (s *Store) objectName(key []byte) string {
	return s.prefix + hex.EncodeToString(key)
}

func (s *Store) blobKey(name string) ([]byte, bool) {
	encoded, ok := strings.CutPrefix(name, s.prefix)
	if !ok {
		return nil, false
	}
	key, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, false
	}
	return key, true
}

func (s *Store) Close() error {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.client.Close()
}

// stagedWrite is a pending put or delete
type stagedWrite struct {
	value   []byte
	deleted bool
}

type objectTxn struct {
	store     *Store
	writes    map[string]stagedWrite
	readWrite bool
	finished  bool
}

func (s *Store) NewTransaction(readWrite bool) types.Txn {
	return &objectTxn{
		store:     s,
		writes:    make(map[string]stagedWrite),
		readWrite: readWrite,
	}
}

func (s *Store) validateTxn(txn types.Txn) (*objectTxn, error) {
	if txn == nil {
		return nil, types.ErrNilTxn
	}
	t, ok := txn.(*objectTxn)
	if !ok || t.store != s {
		return nil, types.ErrTxnWrongType
	}
	if t.finished {
		return nil, types.ErrTxnFinished
	}
	return t, nil
}

func (s *Store) writableTxn(txn types.Txn) (*objectTxn, error) {
	t, err := s.validateTxn(txn)
	if err != nil {
		return nil, err
	}
	if !t.readWrite {
		return nil, errors.New("transaction is read-only")
	}
	return t, nil
}

func (s *Store) Get(txn types.Txn, key []byte) ([]byte, error) {
	t, err := s.validateTxn(txn)
	if err != nil {
		return nil, err
	}
	name := s.objectName(key)
	if staged, ok := t.writes[name]; ok {
		if staged.deleted {
			return nil, types.ErrBlobKeyNotFound
		}
		return slices.Clone(staged.value), nil
	}
	ctx, cancel := s.opContext()
	defer cancel()
	data, err := s.client.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, types.ErrBlobKeyNotFound
		}
		s.logger.Error("object get failed", "key", name, "error", err)
		return nil, err
	}
	s.observe("get", "read", len(data))
	return data, nil
}

func (s *Store) Set(txn types.Txn, key []byte, val []byte) error {
	t, err := s.writableTxn(txn)
	if err != nil {
		return err
	}
	t.writes[s.objectName(key)] = stagedWrite{value: slices.Clone(val)}
	return nil
}

func (s *Store) Delete(txn types.Txn, key []byte) error {
	t, err := s.writableTxn(txn)
	if err != nil {
		return err
	}
	t.writes[s.objectName(key)] = stagedWrite{deleted: true}
	return nil
}

// Commit sends the staged writes to the bucket in key order. A failure part
// way through leaves the earlier writes in place.
func (t *objectTxn) Commit() error {
	if t.finished {
		return nil
	}
	t.finished = true
	names := slices.Sorted(maps.Keys(t.writes))
	s := t.store
	for _, name := range names {
		staged := t.writes[name]
		ctx, cancel := s.opContext()
		var err error
		if staged.deleted {
			err = s.client.Delete(ctx, name)
			if errors.Is(err, ErrObjectNotFound) {
				err = nil
			}
			s.observe("delete", "", 0)
		} else {
			err = s.client.Put(ctx, name, staged.value)
			s.observe("put", "write", len(staged.value))
		}
		cancel()
		if err != nil {
			s.logger.Error("object commit failed", "key", name, "error", err)
			return err
		}
	}
	t.writes = nil
	return nil
}

func (t *objectTxn) Rollback() error {
	t.finished = true
	t.writes = nil
	return nil
}

// NewIterator lists the matching objects up front and overlays the writes
// staged in the transaction
func (s *Store) NewIterator(
	txn types.Txn,
	opts types.BlobIteratorOptions,
) types.BlobIterator {
	t, err := s.validateTxn(txn)
	if err != nil {
		return &objectIterator{err: err}
	}
	ctx, cancel := s.opContext()
	defer cancel()
	names, err := s.client.List(ctx, s.objectName(opts.Prefix))
	s.observe("list", "", 0)
	if err != nil {
		s.logger.Error("object list failed", "error", err)
		return &objectIterator{err: err}
	}
	keySet := make(map[string]struct{}, len(names))
	for _, name := range names {
		if key, ok := s.blobKey(name); ok {
			keySet[string(key)] = struct{}{}
		}
	}
	for name, staged := range t.writes {
		key, ok := s.blobKey(name)
		if !ok || !strings.HasPrefix(string(key), string(opts.Prefix)) {
			continue
		}
		if staged.deleted {
			delete(keySet, string(key))
		} else {
			keySet[string(key)] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	if opts.Reverse {
		slices.Reverse(keys)
	}
	return &objectIterator{
		store:   s,
		txn:     txn,
		keys:    keys,
		reverse: opts.Reverse,
	}
}

type objectIterator struct {
	store   *Store
	txn     types.Txn
	err     error
	keys    []string
	idx     int
	reverse bool
}

func (it *objectIterator) Rewind() {
	it.idx = 0
}

func (it *objectIterator) Seek(prefix []byte) {
	target := string(prefix)
	it.idx = len(it.keys)
	for i, key := range it.keys {
		if (!it.reverse && key >= target) || (it.reverse && key <= target) {
			it.idx = i
			return
		}
	}
}

func (it *objectIterator) Valid() bool {
	return it.err == nil && it.idx < len(it.keys)
}

func (it *objectIterator) ValidForPrefix(prefix []byte) bool {
	return it.Valid() && strings.HasPrefix(it.keys[it.idx], string(prefix))
}

func (it *objectIterator) Next() {
	if it.idx < len(it.keys) {
		it.idx++
	}
}

func (it *objectIterator) Item() types.BlobItem {
	if !it.Valid() {
		return nil
	}
	return &objectItem{store: it.store, txn: it.txn, key: []byte(it.keys[it.idx])}
}

func (it *objectIterator) Close() {}

func (it *objectIterator) Err() error {
	return it.err
}

type objectItem struct {
	store *Store
	txn   types.Txn
	key   []byte
}

func (i *objectItem) Key() []byte {
	return i.key
}

func (i *objectItem) ValueCopy(dst []byte) ([]byte, error) {
	data, err := i.store.Get(i.txn, i.key)
	if err != nil {
		return nil, err
	}
	return append(dst[:0], data...), nil
}

// GetCommitTimestamp returns the last commit timestamp, or 0 if none was recorded
func (s *Store) GetCommitTimestamp() (int64, error) {
	txn := s.NewTransaction(false)
	defer txn.Rollback() //nolint:errcheck

	val, err := s.Get(txn, []byte(commitTimestampBlobKey))
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return new(big.Int).SetBytes(val).Int64(), nil
}

func (s *Store) SetCommitTimestamp(timestamp int64, txn types.Txn) error {
	if txn == nil {
		return types.ErrNilTxn
	}
	return s.Set(
		txn,
		[]byte(commitTimestampBlobKey),
		new(big.Int).SetInt64(timestamp).Bytes(),
	)
}
