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

package types

import (
	"encoding/binary"
	"slices"

	"golang.org/x/crypto/blake2b"
)

const (
	VoteBlobKeyPrefix = "v"

	reportIDDomain = "report"
)

// VoteBlobKey returns the create-once key of the vote marker for a
// (report, agent) pair
func VoteBlobKey(report, agent Identity) []byte {
	return slices.Concat(
		[]byte(VoteBlobKeyPrefix),
		report.Bytes(),
		agent.Bytes(),
	)
}

// VoteBlobReportPrefix returns the key prefix shared by all vote markers of a report
func VoteBlobReportPrefix(report Identity) []byte {
	return slices.Concat([]byte(VoteBlobKeyPrefix), report.Bytes())
}

// ReportID derives the identity of a report from the program it concerns and
// the global report sequence number at submission time
func ReportID(program Identity, sequence uint64) Identity {
	seqBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(seqBytes, sequence)
	sum := blake2b.Sum256(
		slices.Concat([]byte(reportIDDomain), program.Bytes(), seqBytes),
	)
	return Identity(sum)
}
