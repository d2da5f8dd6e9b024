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
	"github.com/blinklabs-io/nile/database/types"
)

// Report is an incident report about a program awaiting or having reached
// agent consensus
type Report struct {
	ReportID       []byte       `gorm:"uniqueIndex;size:32;not null"`
	Program        []byte       `gorm:"index;size:32;not null"`
	Submitter      []byte       `gorm:"index;size:32;not null"`
	EventType      string       `gorm:"size:32"`
	Headline       string       `gorm:"size:200"`
	Sequence       types.Uint64 `gorm:"uniqueIndex;size:20"`
	SubmittedAt    int64
	FinalizedAt    int64
	ID             uint `gorm:"primarykey"`
	ImpactScore    int8
	Confirmations  uint8
	Rejections     uint8
	RequiredQuorum uint8
	Finalized      bool `gorm:"index"`
	Accepted       bool
}

func (Report) TableName() string {
	return "report"
}

func (r *Report) Identity() types.Identity {
	return identity(r.ReportID)
}

func (r *Report) ProgramIdentity() types.Identity {
	return identity(r.Program)
}

func (r *Report) SubmitterIdentity() types.Identity {
	return identity(r.Submitter)
}
