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

package objectstore

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/blinklabs-io/nile/database/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryClient is an in-process bucket
type memoryClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
	failPut error
	closed  bool
}

func newMemoryClient() *memoryClient {
	return &memoryClient{objects: make(map[string][]byte)}
}

func (m *memoryClient) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return slices.Clone(val), nil
}

func (m *memoryClient) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut != nil {
		return m.failPut
	}
	m.puts++
	m.objects[key] = slices.Clone(value)
	return nil
}

func (m *memoryClient) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *memoryClient) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ret []string
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			ret = append(ret, key)
		}
	}
	return ret, nil
}

func (m *memoryClient) Close() error {
	m.closed = true
	return nil
}

func newTestStore(t *testing.T) (*Store, *memoryClient) {
	t.Helper()
	client := newMemoryClient()
	s, err := New(Config{Client: client, Prefix: "nile/", Backend: "memory"})
	require.NoError(t, err)
	return s, client
}

func TestNewRequiresClient(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, types.ErrBlobStoreUnavailable)
}

func TestStagedWritesOnlyLandOnCommit(t *testing.T) {
	s, client := newTestStore(t)
	key := []byte{'v', 0x00, 0xff}

	txn := s.NewTransaction(true)
	require.NoError(t, s.Set(txn, key, []byte("marker")))
	// Visible inside the transaction only
	val, err := s.Get(txn, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("marker"), val)
	assert.Empty(t, client.objects)

	require.NoError(t, txn.Commit())
	assert.Equal(t, []byte("marker"), client.objects["nile/7600ff"])

	readTxn := s.NewTransaction(false)
	defer readTxn.Rollback() //nolint:errcheck
	val, err = s.Get(readTxn, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("marker"), val)
}

func TestRollbackDiscardsWrites(t *testing.T) {
	s, client := newTestStore(t)
	txn := s.NewTransaction(true)
	require.NoError(t, s.Set(txn, []byte("a"), []byte("1")))
	require.NoError(t, txn.Rollback())
	assert.Empty(t, client.objects)
	assert.Zero(t, client.puts)

	_, err := s.Get(txn, []byte("a"))
	require.ErrorIs(t, err, types.ErrTxnFinished)
}

func TestDeleteIsStaged(t *testing.T) {
	s, client := newTestStore(t)
	txn := s.NewTransaction(true)
	require.NoError(t, s.Set(txn, []byte("a"), []byte("1")))
	require.NoError(t, txn.Commit())

	txn = s.NewTransaction(true)
	require.NoError(t, s.Delete(txn, []byte("a")))
	_, err := s.Get(txn, []byte("a"))
	require.ErrorIs(t, err, types.ErrBlobKeyNotFound)
	assert.Len(t, client.objects, 1)
	require.NoError(t, txn.Commit())
	assert.Empty(t, client.objects)

	// Deleting a missing object is not an error
	txn = s.NewTransaction(true)
	require.NoError(t, s.Delete(txn, []byte("missing")))
	require.NoError(t, txn.Commit())
}

func TestReadOnlyTxn(t *testing.T) {
	s, _ := newTestStore(t)
	txn := s.NewTransaction(false)
	require.Error(t, s.Set(txn, []byte("a"), []byte("1")))
	require.Error(t, s.Delete(txn, []byte("a")))
	_, err := s.Get(txn, []byte("a"))
	require.ErrorIs(t, err, types.ErrBlobKeyNotFound)
}

func TestTxnValidation(t *testing.T) {
	s, _ := newTestStore(t)
	other, _ := newTestStore(t)
	_, err := s.Get(nil, []byte("a"))
	require.ErrorIs(t, err, types.ErrNilTxn)
	_, err = s.Get(other.NewTransaction(false), []byte("a"))
	require.ErrorIs(t, err, types.ErrTxnWrongType)
	it := s.NewIterator(nil, types.BlobIteratorOptions{})
	assert.False(t, it.Valid())
	require.ErrorIs(t, it.Err(), types.ErrNilTxn)
}

func TestIteratorOverlaysStagedWrites(t *testing.T) {
	s, client := newTestStore(t)
	txn := s.NewTransaction(true)
	for _, key := range []string{"pa", "pb", "pc", "q"} {
		require.NoError(t, s.Set(txn, []byte(key), []byte(key)))
	}
	require.NoError(t, txn.Commit())
	// Foreign objects under the prefix are skipped
	client.objects["nile/not-hex"] = []byte("x")

	txn = s.NewTransaction(true)
	defer txn.Rollback() //nolint:errcheck
	require.NoError(t, s.Delete(txn, []byte("pb")))
	require.NoError(t, s.Set(txn, []byte("pd"), []byte("pd")))

	collect := func(opts types.BlobIteratorOptions) []string {
		var ret []string
		it := s.NewIterator(txn, opts)
		defer it.Close()
		for it.Rewind(); it.ValidForPrefix(opts.Prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			require.NoError(t, err)
			assert.Equal(t, it.Item().Key(), val)
			ret = append(ret, string(it.Item().Key()))
		}
		require.NoError(t, it.Err())
		return ret
	}
	assert.Equal(t, []string{"pa", "pc", "pd"}, collect(types.BlobIteratorOptions{Prefix: []byte("p")}))
	assert.Equal(t, []string{"pd", "pc", "pa"}, collect(types.BlobIteratorOptions{Prefix: []byte("p"), Reverse: true}))

	it := s.NewIterator(txn, types.BlobIteratorOptions{})
	it.Seek([]byte("pc"))
	require.True(t, it.Valid())
	assert.Equal(t, []byte("pc"), it.Item().Key())
}

func TestCommitFailure(t *testing.T) {
	s, client := newTestStore(t)
	client.failPut = errors.New("bucket unavailable")
	txn := s.NewTransaction(true)
	require.NoError(t, s.Set(txn, []byte("a"), []byte("1")))
	require.ErrorIs(t, txn.Commit(), client.failPut)
}

func TestCommitTimestamp(t *testing.T) {
	s, _ := newTestStore(t)
	ts, err := s.GetCommitTimestamp()
	require.NoError(t, err)
	assert.Zero(t, ts)

	require.ErrorIs(t, s.SetCommitTimestamp(1, nil), types.ErrNilTxn)
	txn := s.NewTransaction(true)
	require.NoError(t, s.SetCommitTimestamp(1700000000000, txn))
	require.NoError(t, txn.Commit())
	ts, err = s.GetCommitTimestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), ts)
}

func TestMetricsAndClose(t *testing.T) {
	client := newMemoryClient()
	promRegistry := prometheus.NewRegistry()
	s, err := New(Config{Client: client, PromRegistry: promRegistry, Backend: "memory"})
	require.NoError(t, err)
	txn := s.NewTransaction(true)
	require.NoError(t, s.Set(txn, []byte("a"), []byte("1234")))
	require.NoError(t, txn.Commit())

	assert.InDelta(t, 1, testutil.ToFloat64(s.metrics.ops.WithLabelValues("memory", "put")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(s.metrics.bytes.WithLabelValues("memory", "write")), 0)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.True(t, client.closed)
}
