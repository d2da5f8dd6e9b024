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
	"math"
	"math/bits"
)

// Reputation points awarded per action
const (
	PointsPerScore  uint64 = 10
	PointsPerReport uint64 = 5
	PointsPerVote   uint64 = 2
)

// Field length caps, in bytes
const (
	MaxNameLength       = 64
	MaxEventTypeLength  = 32
	MaxHeadlineLength   = 200
	MaxDetailsURILength = 200

	MinImpactScore = -100
	MaxImpactScore = 100
)

func addUint64[T ~uint64](a T, b uint64) (T, error) {
	sum, carry := bits.Add64(uint64(a), b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return T(sum), nil
}

func incUint64[T ~uint64](v T) (T, error) {
	return addUint64(v, 1)
}

func incUint32(v uint32) (uint32, error) {
	if v == math.MaxUint32 {
		return 0, ErrOverflow
	}
	return v + 1, nil
}

func incUint8(v uint8) (uint8, error) {
	if v == math.MaxUint8 {
		return 0, ErrOverflow
	}
	return v + 1, nil
}
