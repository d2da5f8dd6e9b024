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

// AuthorityRowID is the primary key of the singleton authority row
const AuthorityRowID = 1

// Authority is the process-wide ledger of registered agents and global
// submission totals. Only one row exists.
type Authority struct {
	Admin                []byte `gorm:"size:32;not null"`
	TotalScoresSubmitted types.Uint64
	TotalReports         types.Uint64
	InitializedAt        int64
	ID                   uint `gorm:"primarykey"`
	AgentCount           uint32
}

func (Authority) TableName() string {
	return "authority"
}

func (a *Authority) AdminIdentity() types.Identity {
	return identity(a.Admin)
}
