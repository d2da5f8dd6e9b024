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
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

const IdentitySize = 32

var ErrInvalidIdentity = errors.New("invalid identity")

// Identity is a 32-byte principal or record key. Its text form is base58.
type Identity [IdentitySize]byte

func NewIdentityFromBytes(b []byte) (Identity, error) {
	var ret Identity
	if len(b) != IdentitySize {
		return ret, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidIdentity,
			IdentitySize,
			len(b),
		)
	}
	copy(ret[:], b)
	return ret, nil
}

func NewIdentityFromString(s string) (Identity, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}
	return NewIdentityFromBytes(b)
}

// MustIdentity is like NewIdentityFromString but panics on error. Intended
// for tests and constants.
func MustIdentity(s string) Identity {
	id, err := NewIdentityFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (i Identity) Bytes() []byte {
	return i[:]
}

func (i Identity) String() string {
	return base58.Encode(i[:])
}

func (i Identity) IsZero() bool {
	return i == Identity{}
}
