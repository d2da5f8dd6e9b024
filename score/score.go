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

// Package score aggregates the four sub-scores of a program into a total and
// a letter grade.
package score

import (
	"errors"
	"fmt"
)

// MaxSubScore is the highest value accepted for any sub-score
const MaxSubScore = 100

var (
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrUnknownGrade    = errors.New("unknown grade")
)

type Grade int

const (
	GradeF Grade = iota
	GradeD
	GradeC
	GradeB
	GradeA
	GradeAPlus
)

var gradeNames = map[Grade]string{
	GradeAPlus: "A+",
	GradeA:     "A",
	GradeB:     "B",
	GradeC:     "C",
	GradeD:     "D",
	GradeF:     "F",
}

func (g Grade) String() string {
	if name, ok := gradeNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// ParseGrade returns the grade for its string form
func ParseGrade(s string) (Grade, error) {
	for grade, name := range gradeNames {
		if name == s {
			return grade, nil
		}
	}
	return GradeF, fmt.Errorf("%w: %q", ErrUnknownGrade, s)
}

// GradeFor maps a total score onto its grade bucket
func GradeFor(total uint8) Grade {
	switch {
	case total >= 90:
		return GradeAPlus
	case total >= 80:
		return GradeA
	case total >= 70:
		return GradeB
	case total >= 60:
		return GradeC
	case total >= 50:
		return GradeD
	default:
		return GradeF
	}
}

// SubScores holds the per-dimension scores given to a program
type SubScores struct {
	Name     uint8
	Image    uint8
	Likeness uint8
	Essence  uint8
}

// Validate reports ErrScoreOutOfRange if any sub-score is above MaxSubScore
func (s SubScores) Validate() error {
	for _, v := range []struct {
		name  string
		value uint8
	}{
		{"name", s.Name},
		{"image", s.Image},
		{"likeness", s.Likeness},
		{"essence", s.Essence},
	} {
		if v.value > MaxSubScore {
			return fmt.Errorf(
				"%w: %s score %d",
				ErrScoreOutOfRange,
				v.name,
				v.value,
			)
		}
	}
	return nil
}

// Aggregate returns the floored mean of the sub-scores and its grade. The sum
// is computed in a wider type so valid input can't overflow.
func Aggregate(s SubScores) (uint8, Grade) {
	sum := uint16(s.Name) + uint16(s.Image) + uint16(s.Likeness) + uint16(s.Essence)
	// #nosec G115 -- mean of four uint8 values always fits
	total := uint8(sum / 4)
	return total, GradeFor(total)
}
