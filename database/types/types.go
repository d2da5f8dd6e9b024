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

package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
)

// Uint64 stores a uint64 as a fixed-width decimal string so that values
// above the signed 64-bit range survive database/sql and text ordering in
// the database matches numeric ordering
//
//nolint:recvcheck
type Uint64 uint64

// Uint64Width is the stored width of a Uint64, enough for math.MaxUint64
const Uint64Width = 20

func (u Uint64) Value() (driver.Value, error) {
	return fmt.Sprintf("%0*d", Uint64Width, uint64(u)), nil
}

func (u *Uint64) Scan(val any) error {
	var v string
	switch tmpVal := val.(type) {
	case string:
		v = tmpVal
	case []byte:
		// MySQL returns text columns as bytes
		v = string(tmpVal)
	case int64:
		if tmpVal < 0 {
			return fmt.Errorf("negative value %d for Uint64", tmpVal)
		}
		*u = Uint64(tmpVal)
		return nil
	default:
		return fmt.Errorf(
			"value was not expected type, wanted string, got %T",
			val,
		)
	}
	tmpUint, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return err
	}
	*u = Uint64(tmpUint)
	return nil
}

// ErrBlobKeyNotFound is returned by blob operations when a key is missing
var ErrBlobKeyNotFound = errors.New("blob key not found")

// ErrRecordExists is returned when a create-once record already exists at its key
var ErrRecordExists = errors.New("record already exists")

// ErrTxnWrongType is returned when a transaction has the wrong type
var ErrTxnWrongType = errors.New("invalid transaction type")

// ErrNilTxn is returned when a nil transaction is provided where a valid transaction is required
var ErrNilTxn = errors.New("nil transaction")

// ErrTxnFinished is returned when a transaction is used after commit or rollback
var ErrTxnFinished = errors.New("transaction already finished")

// ErrNoStoreAvailable is returned when no blob or metadata store is available
var ErrNoStoreAvailable = errors.New("no store available")

// ErrBlobStoreUnavailable is returned when blob store cannot be accessed
var ErrBlobStoreUnavailable = errors.New("blob store unavailable")

// BlobItem represents a value returned by an iterator
type BlobItem interface {
	Key() []byte
	ValueCopy(dst []byte) ([]byte, error)
}

// BlobIterator provides key iteration over the blob store.
//
// Items returned by Item() must only be accessed while the transaction used
// to create the iterator is still active.
type BlobIterator interface {
	Rewind()
	Seek(prefix []byte)
	Valid() bool
	ValidForPrefix(prefix []byte) bool
	Next()
	Item() BlobItem
	Close()
	Err() error
}

// BlobIteratorOptions configures blob iterator creation
type BlobIteratorOptions struct {
	Prefix  []byte
	Reverse bool
}

// Txn is a simple transaction handle for commit/rollback only.
// Database layer (Txn) coordinates metadata and blob operations separately.
type Txn interface {
	Commit() error
	Rollback() error
}
