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
)

// RequiredQuorum returns the confirmations needed to accept a report when
// agentCount agents are authorized: ceil(2N/3), at least 1. It fails with
// ErrOverflow if the result does not fit in a uint8.
func RequiredQuorum(agentCount uint32) (uint8, error) {
	quorum := (uint64(agentCount)*2 + 2) / 3
	if quorum < 1 {
		quorum = 1
	}
	if quorum > math.MaxUint8 {
		return 0, ErrOverflow
	}
	return uint8(quorum), nil
}
