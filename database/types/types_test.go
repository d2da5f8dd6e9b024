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

package types_test

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"math"
	"testing"

	"github.com/blinklabs-io/nile/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint64ScanValue(t *testing.T) {
	testDefs := []struct {
		value    types.Uint64
		expected string
	}{
		{value: 0, expected: "00000000000000000000"},
		{value: 123, expected: "00000000000000000123"},
		{value: math.MaxUint64, expected: "18446744073709551615"},
	}
	for _, testDef := range testDefs {
		var tmpValuer driver.Valuer = testDef.value
		valueOut, err := tmpValuer.Value()
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, valueOut)
		var tmpUint types.Uint64
		var tmpScanner sql.Scanner = &tmpUint
		require.NoError(t, tmpScanner.Scan(valueOut))
		assert.Equal(t, testDef.value, tmpUint)
	}
	var tmpUint types.Uint64
	require.NoError(t, tmpUint.Scan([]byte("42")))
	assert.Equal(t, types.Uint64(42), tmpUint)
	require.NoError(t, tmpUint.Scan(int64(7)))
	assert.Equal(t, types.Uint64(7), tmpUint)
	require.Error(t, tmpUint.Scan(int64(-1)))
	require.Error(t, tmpUint.Scan(1.5))
}

func TestUint64TextOrder(t *testing.T) {
	values := []types.Uint64{
		0, 2, 9, 10, 19, 1 << 62, 1 << 63, math.MaxUint64,
	}
	for i := 1; i < len(values); i++ {
		prev, err := values[i-1].Value()
		require.NoError(t, err)
		cur, err := values[i].Value()
		require.NoError(t, err)
		assert.Less(t, prev.(string), cur.(string))
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	var id types.Identity
	for i := range id {
		id[i] = byte(i)
	}
	parsed, err := types.NewIdentityFromString(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.False(t, id.IsZero())
	assert.True(t, types.Identity{}.IsZero())
}

func TestIdentityInvalid(t *testing.T) {
	_, err := types.NewIdentityFromString("0OIl")
	require.ErrorIs(t, err, types.ErrInvalidIdentity)
	_, err = types.NewIdentityFromBytes([]byte{1, 2, 3})
	require.ErrorIs(t, err, types.ErrInvalidIdentity)
}

func TestReportIDDeterministic(t *testing.T) {
	program := types.Identity{1}
	a := types.ReportID(program, 7)
	b := types.ReportID(program, 7)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, types.ReportID(program, 8))
	assert.NotEqual(t, a, types.ReportID(types.Identity{2}, 7))
}

func TestVoteBlobKey(t *testing.T) {
	report := types.Identity{0xaa}
	agent := types.Identity{0xbb}
	key := types.VoteBlobKey(report, agent)
	assert.Len(t, key, 1+2*types.IdentitySize)
	assert.True(t, bytes.HasPrefix(key, types.VoteBlobReportPrefix(report)))
	assert.False(
		t,
		bytes.HasPrefix(key, types.VoteBlobReportPrefix(types.Identity{0xbb})),
	)
}
