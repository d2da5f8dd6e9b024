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

	"github.com/blinklabs-io/nile/database/models"
	"github.com/blinklabs-io/nile/database/types"
)

// ErrVoteRecordMissing is returned when a vote marker exists without its
// vote record in the blob store
var ErrVoteRecordMissing = errors.New("vote record missing from blob store")

// GetVote returns the vote of an agent on a report, or nil if the agent has
// not voted. The metadata marker decides whether the vote exists.
func (d *Database) GetVote(
	report types.Identity,
	agent types.Identity,
	txn *Txn,
) (*models.Vote, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	marker, err := d.metadata.GetVoteMarker(
		report.Bytes(),
		agent.Bytes(),
		txn.Metadata(),
	)
	if err != nil {
		return nil, err
	}
	if marker == nil {
		return nil, nil
	}
	return d.getVoteRecord(report, agent, txn)
}

func (d *Database) getVoteRecord(
	report types.Identity,
	agent types.Identity,
	txn *Txn,
) (*models.Vote, error) {
	val, err := d.blob.Get(txn.Blob(), types.VoteBlobKey(report, agent))
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return nil, fmt.Errorf(
				"%w: report %s agent %s",
				ErrVoteRecordMissing,
				report.String(),
				agent.String(),
			)
		}
		return nil, fmt.Errorf("get vote: %w", err)
	}
	ret := &models.Vote{}
	if err := ret.UnmarshalBinary(val); err != nil {
		return nil, err
	}
	return ret, nil
}

// CreateVote stores a vote. The marker row is created first and fails with
// types.ErrRecordExists if the agent already voted on the report. The vote
// record then goes to the blob store, replacing any record left behind by a
// transaction whose metadata commit failed.
func (d *Database) CreateVote(vote *models.Vote, txn *Txn) error {
	if txn == nil {
		return d.Transaction(true).Do(func(txn *Txn) error {
			return d.CreateVote(vote, txn)
		})
	}
	if err := d.metadata.CreateVoteMarker(vote.Marker(), txn.Metadata()); err != nil {
		return err
	}
	val, err := vote.MarshalBinary()
	if err != nil {
		return err
	}
	key := types.VoteBlobKey(vote.ReportIdentity(), vote.AgentIdentity())
	if err := d.blob.Set(txn.Blob(), key, val); err != nil {
		return fmt.Errorf("set vote: %w", err)
	}
	return nil
}

// GetReportVotes returns all votes cast on a report, ordered by voter key.
// Blob records without a marker are skipped.
func (d *Database) GetReportVotes(
	report types.Identity,
	txn *Txn,
) ([]models.Vote, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	markers, err := d.metadata.GetVoteMarkersByReport(
		report.Bytes(),
		txn.Metadata(),
	)
	if err != nil {
		return nil, err
	}
	if len(markers) == 0 {
		return nil, nil
	}
	counted := make(map[types.Identity]struct{}, len(markers))
	for _, marker := range markers {
		counted[marker.AgentIdentity()] = struct{}{}
	}
	prefix := types.VoteBlobReportPrefix(report)
	iter := d.blob.NewIterator(
		txn.Blob(),
		types.BlobIteratorOptions{Prefix: prefix},
	)
	defer iter.Close()
	ret := make([]models.Vote, 0, len(markers))
	for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
		item := iter.Item()
		if item == nil {
			continue
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, fmt.Errorf("read vote: %w", err)
		}
		var vote models.Vote
		if err := vote.UnmarshalBinary(val); err != nil {
			return nil, err
		}
		if _, ok := counted[vote.AgentIdentity()]; !ok {
			continue
		}
		ret = append(ret, vote)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(ret) != len(markers) {
		return nil, fmt.Errorf(
			"%w: report %s has %d markers and %d records",
			ErrVoteRecordMissing,
			report.String(),
			len(markers),
			len(ret),
		)
	}
	return ret, nil
}
