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

// Agent is an authorized scanning agent along with its cumulative statistics
type Agent struct {
	Agent        []byte `gorm:"uniqueIndex;size:32;not null"`
	AuthorizedBy []byte `gorm:"size:32"`
	TotalScores  types.Uint64
	TotalReports types.Uint64
	TotalVotes   types.Uint64
	Points       types.Uint64 `gorm:"index;size:20"`
	AuthorizedAt int64
	ID           uint `gorm:"primarykey"`
	Active       bool
}

func (Agent) TableName() string {
	return "agent"
}

func (a *Agent) Identity() types.Identity {
	return identity(a.Agent)
}
