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

// Program is the profile of a tracked program: its latest four sub-scores,
// the aggregate score and grade derived from them, and scoring metadata
type Program struct {
	Program       []byte `gorm:"uniqueIndex;size:32;not null"`
	Registrant    []byte `gorm:"size:32"`
	Name          string `gorm:"size:64"`
	Grade         string `gorm:"size:2"`
	DetailsUri    string `gorm:"size:200"`
	LastScoredAt  int64
	RegisteredAt  int64
	ID            uint `gorm:"primarykey"`
	ScoreCount    uint32
	NameScore     uint8
	ImageScore    uint8
	LikenessScore uint8
	EssenceScore  uint8
	TotalScore    uint8 `gorm:"index"`
}

func (Program) TableName() string {
	return "program"
}

func (p *Program) Identity() types.Identity {
	return identity(p.Program)
}
