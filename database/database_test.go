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

package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/blinklabs-io/nile/database"
	"github.com/blinklabs-io/nile/database/models"
	"github.com/blinklabs-io/nile/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestInMemoryDefaults(t *testing.T) {
	db := newTestDatabase(t)
	assert.Equal(t, "", db.DataDir())
	assert.NotNil(t, db.Logger())
	assert.NotNil(t, db.Blob())
	assert.NotNil(t, db.Metadata())
}

func TestUnknownPlugin(t *testing.T) {
	_, err := database.New(&database.Config{BlobPlugin: "nope"})
	require.Error(t, err)
	_, err = database.New(&database.Config{MetadataPlugin: "nope"})
	require.Error(t, err)
}

func TestVoteCreateOnce(t *testing.T) {
	db := newTestDatabase(t)
	report := types.Identity{0x01}
	agent := types.Identity{0x02}
	vote := &models.Vote{
		Report:   report.Bytes(),
		Agent:    agent.Bytes(),
		Approved: true,
		VotedAt:  1000,
	}
	got, err := db.GetVote(report, agent, nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, db.CreateVote(vote, nil))
	err = db.CreateVote(vote, nil)
	require.ErrorIs(t, err, types.ErrRecordExists)

	got, err = db.GetVote(report, agent, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Approved)
	assert.Equal(t, int64(1000), got.VotedAt)
}

func TestReportVotes(t *testing.T) {
	db := newTestDatabase(t)
	report := types.Identity{0x10}
	other := types.Identity{0x11}
	txn := db.Transaction(true)
	require.NoError(t, txn.Do(func(txn *database.Txn) error {
		for i, approved := range []bool{true, false, true} {
			agent := types.Identity{byte(0x20 + i)}
			if err := db.CreateVote(&models.Vote{
				Report:   report.Bytes(),
				Agent:    agent.Bytes(),
				Approved: approved,
			}, txn); err != nil {
				return err
			}
		}
		return db.CreateVote(&models.Vote{
			Report: other.Bytes(),
			Agent:  types.Identity{0x20}.Bytes(),
		}, txn)
	}))

	votes, err := db.GetReportVotes(report, nil)
	require.NoError(t, err)
	require.Len(t, votes, 3)
	assert.Equal(t, types.Identity{0x20}, votes[0].AgentIdentity())
	assert.False(t, votes[1].Approved)

	votes, err = db.GetReportVotes(types.Identity{0x12}, nil)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestTxnDoRollsBackBothStores(t *testing.T) {
	db := newTestDatabase(t)
	agent := types.Identity{0x30}
	report := types.Identity{0x31}
	errBoom := errors.New("boom")
	err := db.Transaction(true).Do(func(txn *database.Txn) error {
		if err := db.CreateAgent(
			&models.Agent{Agent: agent.Bytes(), Active: true},
			txn,
		); err != nil {
			return err
		}
		if err := db.CreateVote(&models.Vote{
			Report: report.Bytes(),
			Agent:  agent.Bytes(),
		}, txn); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	got, err := db.GetAgent(agent, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	vote, err := db.GetVote(report, agent, nil)
	require.NoError(t, err)
	assert.Nil(t, vote)
}

func TestRecordWrappers(t *testing.T) {
	db := newTestDatabase(t)
	admin := types.Identity{0x40}
	require.NoError(t, db.CreateAuthority(
		&models.Authority{Admin: admin.Bytes()},
		nil,
	))
	require.ErrorIs(
		t,
		db.CreateAuthority(&models.Authority{Admin: admin.Bytes()}, nil),
		types.ErrRecordExists,
	)
	authority, err := db.GetAuthority(nil)
	require.NoError(t, err)
	authority.AgentCount++
	require.NoError(t, db.UpdateAuthority(authority, nil))
	authority, err = db.GetAuthority(nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), authority.AgentCount)

	program := types.Identity{0x41}
	require.NoError(t, db.CreateProgram(
		&models.Program{Program: program.Bytes(), Name: "p"},
		nil,
	))
	p, err := db.GetProgram(program, nil)
	require.NoError(t, err)
	require.NotNil(t, p)
	p.Grade = "F"
	require.NoError(t, db.UpdateProgram(p, nil))

	reportID := types.ReportID(program, 0)
	require.NoError(t, db.CreateReport(&models.Report{
		ReportID:  reportID.Bytes(),
		Program:   program.Bytes(),
		Submitter: admin.Bytes(),
	}, nil))
	r, err := db.GetReport(reportID, nil)
	require.NoError(t, err)
	require.NotNil(t, r)
	r.Finalized = true
	require.NoError(t, db.UpdateReport(r, nil))
	reports, err := db.GetReportsByProgram(program, nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Finalized)

	agents, err := db.GetAgents(0, nil)
	require.NoError(t, err)
	assert.Empty(t, agents)
}

func TestCommitTimestampPersisted(t *testing.T) {
	dataDir := t.TempDir()
	mockClock := clock.NewMock()
	mockClock.Set(time.Unix(1700000000, 0))
	db, err := database.New(&database.Config{
		DataDir: dataDir,
		Clock:   mockClock,
	})
	require.NoError(t, err)
	require.NoError(t, db.CreateAgent(
		&models.Agent{Agent: types.Identity{0x50}.Bytes()},
		nil,
	))
	metadataTs, err := db.Metadata().GetCommitTimestamp()
	require.NoError(t, err)
	blobTs, err := db.Blob().GetCommitTimestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), metadataTs)
	assert.Equal(t, metadataTs, blobTs)
	require.NoError(t, db.Close())

	// Reopening checks that both stores agree
	db, err = database.New(&database.Config{DataDir: dataDir})
	require.NoError(t, err)
	defer db.Close()
	agent, err := db.GetAgent(types.Identity{0x50}, nil)
	require.NoError(t, err)
	assert.NotNil(t, agent)
}

// partialCommit commits only one side of a read-write transaction, leaving
// the stores as a failed two-store commit would
func partialCommit(
	t *testing.T,
	db *database.Database,
	fn func(*database.Txn) error,
	commitBlob bool,
) {
	t.Helper()
	txn := db.Transaction(true)
	require.NoError(t, fn(txn))
	if commitBlob {
		require.NoError(t, txn.Blob().Commit())
	} else {
		require.NoError(t, txn.Metadata().Commit())
	}
	require.NoError(t, txn.Rollback())
}

func TestVoteAfterFailedMetadataCommit(t *testing.T) {
	dataDir := t.TempDir()
	db, err := database.New(&database.Config{DataDir: dataDir})
	require.NoError(t, err)
	require.NoError(t, db.CreateAgent(
		&models.Agent{Agent: types.Identity{0x60}.Bytes()},
		nil,
	))
	report := types.Identity{0x61}
	agent := types.Identity{0x62}
	// Only the blob side of the vote lands
	partialCommit(t, db, func(txn *database.Txn) error {
		if err := db.CreateVote(&models.Vote{
			Report:   report.Bytes(),
			Agent:    agent.Bytes(),
			Approved: false,
			VotedAt:  1,
		}, txn); err != nil {
			return err
		}
		return db.Blob().SetCommitTimestamp(
			time.Now().Add(time.Hour).UnixMilli(),
			txn.Blob(),
		)
	}, true)
	require.NoError(t, db.Close())

	// The blob store being ahead does not block reopening
	db, err = database.New(&database.Config{DataDir: dataDir})
	require.NoError(t, err)
	defer db.Close()

	// The orphaned record does not count as a vote
	vote, err := db.GetVote(report, agent, nil)
	require.NoError(t, err)
	assert.Nil(t, vote)
	votes, err := db.GetReportVotes(report, nil)
	require.NoError(t, err)
	assert.Empty(t, votes)

	// and the agent can still vote
	require.NoError(t, db.CreateVote(&models.Vote{
		Report:   report.Bytes(),
		Agent:    agent.Bytes(),
		Approved: true,
		VotedAt:  2,
	}, nil))
	vote, err = db.GetVote(report, agent, nil)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.True(t, vote.Approved)
	assert.Equal(t, int64(2), vote.VotedAt)
	votes, err = db.GetReportVotes(report, nil)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestMetadataAheadOfBlob(t *testing.T) {
	dataDir := t.TempDir()
	db, err := database.New(&database.Config{DataDir: dataDir})
	require.NoError(t, err)
	require.NoError(t, db.CreateAgent(
		&models.Agent{Agent: types.Identity{0x70}.Bytes()},
		nil,
	))
	partialCommit(t, db, func(txn *database.Txn) error {
		return db.Metadata().SetCommitTimestamp(
			time.Now().Add(time.Hour).UnixMilli(),
			txn.Metadata(),
		)
	}, false)
	require.NoError(t, db.Close())

	db, err = database.New(&database.Config{DataDir: dataDir})
	if db != nil {
		defer db.Close()
	}
	var tsErr database.CommitTimestampError
	require.ErrorAs(t, err, &tsErr)
	assert.Greater(t, tsErr.MetadataTimestamp, tsErr.BlobTimestamp)
}

func TestCommitTimestampError(t *testing.T) {
	err := database.CommitTimestampError{
		MetadataTimestamp: 2,
		BlobTimestamp:     1,
	}
	assert.Equal(
		t,
		"commit timestamp mismatch: 2 (metadata) != 1 (blob)",
		err.Error(),
	)
}

func TestReadOnlyCommitReleases(t *testing.T) {
	db := newTestDatabase(t)
	txn := db.Transaction(false)
	require.NoError(t, txn.Commit())
	// Second finish is a no-op
	require.NoError(t, txn.Rollback())
	txn.Release()
}
