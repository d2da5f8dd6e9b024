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


package models

import (
	"fmt"

	"github.com/blinklabs-io/nile/database/types"
	"github.com/fxamacker/cbor/v2"
)

// VoteMarker is the metadata row that makes a vote count. The unique
// (report, agent) index allows one vote per agent per report, and the row
// commits in the same SQL transaction as the report counters.
type VoteMarker struct {
	ReportID []byte `gorm:"uniqueIndex:idx_vote_report_agent;size:32;not null"`
	Agent    []byte `gorm:"uniqueIndex:idx_vote_report_agent;size:32;not null"`
	ID       uint   `gorm:"primarykey"`
}

func (VoteMarker) TableName() string {
	return "vote_marker"
}

func (m *VoteMarker) AgentIdentity() types.Identity {
	return identity(m.Agent)
}

// Vote is the vote record kept in the blob store under a key derived from
// the (report, agent) pair. It is only meaningful while a VoteMarker for the
// same pair exists.
type Vote struct {
	_        struct{} `cbor:",toarray"`
	Report   []byte
	Agent    []byte
	VotedAt  int64
	Approved bool
}

// voteCbor has Vote's layout without its methods, so encoding it does not
// recurse into MarshalBinary
type voteCbor Vote

func (v *Vote) ReportIdentity() types.Identity {
	return identity(v.Report)
}

func (v *Vote) AgentIdentity() types.Identity {
	return identity(v.Agent)
}

// Marker returns the metadata row for this vote
func (v *Vote) Marker() *VoteMarker {
	return &VoteMarker{
		ReportID: v.Report,
		Agent:    v.Agent,
	}
}

func (v *Vote) MarshalBinary() ([]byte, error) {
	data, err := cbor.Marshal((*voteCbor)(v))
	if err != nil {
		return nil, fmt.Errorf("encode vote: %w", err)
	}
	return data, nil
}

func (v *Vote) UnmarshalBinary(data []byte) error {
	if err := cbor.Unmarshal(data, (*voteCbor)(v)); err != nil {
		return fmt.Errorf("decode vote: %w", err)
	}
	return nil
}
