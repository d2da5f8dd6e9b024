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

package registry

import (
	"errors"
	"math"
	"testing"

	"github.com/blinklabs-io/nile/database/models"
	"github.com/blinklabs-io/nile/database/types"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredQuorum(t *testing.T) {
	testDefs := []struct {
		agentCount uint32
		expected   uint8
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{5, 4},
		{6, 4},
		{7, 5},
		{9, 6},
		{100, 67},
		{382, 255},
	}
	for _, testDef := range testDefs {
		quorum, err := RequiredQuorum(testDef.agentCount)
		require.NoError(t, err)
		assert.Equal(
			t,
			testDef.expected,
			quorum,
			"agent count %d",
			testDef.agentCount,
		)
	}
	_, err := RequiredQuorum(383)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = RequiredQuorum(math.MaxUint32)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestRequiredQuorumProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("quorum is ceil(2N/3) and at least 1", prop.ForAll(
		func(n uint32) bool {
			quorum, err := RequiredQuorum(n)
			if err != nil {
				return false
			}
			q := int(quorum)
			// smallest q with 3q >= 2n
			return q >= 1 && 3*q >= 2*int(n) && (q == 1 || 3*(q-1) < 2*int(n))
		},
		gen.UInt32Range(0, 382),
	))
	properties.TestingRun(t)
}

func TestApplyVoteAccept(t *testing.T) {
	report := &models.Report{Confirmations: 1, RequiredQuorum: 3}
	finalized, err := applyVote(report, true, 10)
	require.NoError(t, err)
	assert.False(t, finalized)
	assert.Equal(t, ReportStatusOpen, ReportStatusOf(report))
	finalized, err = applyVote(report, true, 20)
	require.NoError(t, err)
	assert.True(t, finalized)
	assert.Equal(t, ReportStatusAccepted, ReportStatusOf(report))
	assert.Equal(t, int64(20), report.FinalizedAt)
	assert.Equal(t, uint8(3), report.Confirmations)
}

func TestApplyVoteReject(t *testing.T) {
	report := &models.Report{Confirmations: 1, RequiredQuorum: 3}
	finalized, err := applyVote(report, false, 10)
	require.NoError(t, err)
	assert.False(t, finalized)
	finalized, err = applyVote(report, false, 20)
	require.NoError(t, err)
	assert.True(t, finalized)
	assert.Equal(t, ReportStatusRejected, ReportStatusOf(report))
	assert.Equal(t, uint8(2), report.Rejections)
}

func TestApplyVoteAcceptanceCheckedFirst(t *testing.T) {
	// Both thresholds are crossed by the same vote: acceptance wins
	report := &models.Report{
		Confirmations:  1,
		Rejections:     1,
		RequiredQuorum: 2,
	}
	finalized, err := applyVote(report, true, 5)
	require.NoError(t, err)
	assert.True(t, finalized)
	assert.True(t, report.Accepted)
}

func TestApplyVoteOverflow(t *testing.T) {
	report := &models.Report{
		Confirmations:  math.MaxUint8,
		Rejections:     math.MaxUint8,
		RequiredQuorum: math.MaxUint8,
	}
	_, err := applyVote(report, true, 1)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = applyVote(report, false, 1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestCheckedArithmetic(t *testing.T) {
	_, err := addUint64(uint64(math.MaxUint64), 1)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = incUint64(types.Uint64(math.MaxUint64))
	require.ErrorIs(t, err, ErrOverflow)
	v, err := addUint64(uint64(math.MaxUint64-2), 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), v)
	_, err = incUint32(math.MaxUint32)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = incUint8(math.MaxUint8)
	require.ErrorIs(t, err, ErrOverflow)
	agent := &models.Agent{Points: math.MaxUint64 - 1}
	require.ErrorIs(t, award(agent, PointsPerVote), ErrOverflow)
}

func TestErrorCodes(t *testing.T) {
	codes := ErrorCodes()
	require.Len(t, codes, 19)
	seen := map[string]bool{}
	for _, code := range codes {
		name := code.String()
		assert.False(t, seen[name], "duplicate code name %s", name)
		seen[name] = true
		assert.NotEmpty(t, code.Category(), "code %s has no category", name)
	}
	assert.Equal(t, CategoryValidation, CodeHeadlineTooLong.Category())
	assert.Equal(t, CategoryAuthorization, CodeAgentSuspended.Category())
	assert.Equal(t, CategoryState, CodeAlreadyVoted.Category())
	assert.Equal(t, CategoryArithmetic, CodeOverflow.Category())
	assert.Equal(t, "ErrorCode(99)", ErrorCode(99).String())
}

func TestErrorMatching(t *testing.T) {
	inner := errors.New("detail")
	err := withOp("vote report", &Error{Code: CodeAlreadyVoted, Err: inner})
	require.ErrorIs(t, err, ErrAlreadyVoted)
	require.ErrorIs(t, err, inner)
	assert.False(t, errors.Is(err, ErrSelfVote))
	assert.Equal(
		t,
		"vote report: agent already voted on this report: detail",
		err.Error(),
	)
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeAlreadyVoted, code)

	// Sentinels are never mutated
	err = withOp("bootstrap", ErrAlreadyInitialized)
	assert.Equal(t, "", ErrAlreadyInitialized.Op)
	assert.Equal(t, "bootstrap: registry already initialized", err.Error())

	_, ok = CodeOf(errors.New("storage"))
	assert.False(t, ok)
}
