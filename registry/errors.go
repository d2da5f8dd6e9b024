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
	"errors"
	"fmt"
)

type ErrorCode int

const (
	CodeScoreOutOfRange ErrorCode = iota + 1
	CodeImpactOutOfRange
	CodeNameTooLong
	CodeEventTypeTooLong
	CodeHeadlineTooLong
	CodeDetailsTooLong
	CodeUnauthorizedAgent
	CodeAgentSuspended
	CodeNotAdmin
	CodeReportFinalized
	CodeAlreadyVoted
	CodeSelfVote
	CodeAlreadyInitialized
	CodeNotInitialized
	CodeAgentExists
	CodeProgramExists
	CodeProgramNotFound
	CodeReportNotFound
	CodeOverflow
)

type ErrorCategory string

const (
	CategoryValidation    ErrorCategory = "validation"
	CategoryAuthorization ErrorCategory = "authorization"
	CategoryState         ErrorCategory = "state"
	CategoryArithmetic    ErrorCategory = "arithmetic"
)

var errorCodeInfo = map[ErrorCode]struct {
	name     string
	message  string
	category ErrorCategory
}{
	CodeScoreOutOfRange:    {"ScoreOutOfRange", "score must be between 0 and 100", CategoryValidation},
	CodeImpactOutOfRange:   {"ImpactOutOfRange", "impact score must be between -100 and 100", CategoryValidation},
	CodeNameTooLong:        {"NameTooLong", "name exceeds 64 bytes", CategoryValidation},
	CodeEventTypeTooLong:   {"EventTypeTooLong", "event type exceeds 32 bytes", CategoryValidation},
	CodeHeadlineTooLong:    {"HeadlineTooLong", "headline exceeds 200 bytes", CategoryValidation},
	CodeDetailsTooLong:     {"DetailsTooLong", "details URI exceeds 200 bytes", CategoryValidation},
	CodeUnauthorizedAgent:  {"UnauthorizedAgent", "caller is not an authorized agent", CategoryAuthorization},
	CodeAgentSuspended:     {"AgentSuspended", "agent is suspended", CategoryAuthorization},
	CodeNotAdmin:           {"NotAdmin", "caller is not the registry admin", CategoryAuthorization},
	CodeReportFinalized:    {"ReportFinalized", "report already finalized", CategoryState},
	CodeAlreadyVoted:       {"AlreadyVoted", "agent already voted on this report", CategoryState},
	CodeSelfVote:           {"SelfVote", "submitter cannot vote on own report", CategoryState},
	CodeAlreadyInitialized: {"AlreadyInitialized", "registry already initialized", CategoryState},
	CodeNotInitialized:     {"NotInitialized", "registry not initialized", CategoryState},
	CodeAgentExists:        {"AgentExists", "agent already authorized", CategoryState},
	CodeProgramExists:      {"ProgramExists", "program already registered", CategoryState},
	CodeProgramNotFound:    {"ProgramNotFound", "program not registered", CategoryState},
	CodeReportNotFound:     {"ReportNotFound", "report not found", CategoryState},
	CodeOverflow:           {"Overflow", "arithmetic overflow", CategoryArithmetic},
}

// ErrorCodes returns every defined error code in order
func ErrorCodes() []ErrorCode {
	ret := make([]ErrorCode, 0, len(errorCodeInfo))
	for code := CodeScoreOutOfRange; code <= CodeOverflow; code++ {
		ret = append(ret, code)
	}
	return ret
}

func (c ErrorCode) String() string {
	if info, ok := errorCodeInfo[c]; ok {
		return info.name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Category groups the code into validation, authorization, state or arithmetic
func (c ErrorCode) Category() ErrorCategory {
	return errorCodeInfo[c].category
}

func (c ErrorCode) message() string {
	if info, ok := errorCodeInfo[c]; ok {
		return info.message
	}
	return c.String()
}

// Error is returned by registry operations that are refused. Storage failures
// are not wrapped in an Error.
type Error struct {
	Err  error
	Op   string
	Code ErrorCode
}

func (e *Error) Error() string {
	msg := e.Code.message()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same code, so the sentinels below work
// with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrScoreOutOfRange    = &Error{Code: CodeScoreOutOfRange}
	ErrImpactOutOfRange   = &Error{Code: CodeImpactOutOfRange}
	ErrNameTooLong        = &Error{Code: CodeNameTooLong}
	ErrEventTypeTooLong   = &Error{Code: CodeEventTypeTooLong}
	ErrHeadlineTooLong    = &Error{Code: CodeHeadlineTooLong}
	ErrDetailsTooLong     = &Error{Code: CodeDetailsTooLong}
	ErrUnauthorizedAgent  = &Error{Code: CodeUnauthorizedAgent}
	ErrAgentSuspended     = &Error{Code: CodeAgentSuspended}
	ErrNotAdmin           = &Error{Code: CodeNotAdmin}
	ErrReportFinalized    = &Error{Code: CodeReportFinalized}
	ErrAlreadyVoted       = &Error{Code: CodeAlreadyVoted}
	ErrSelfVote           = &Error{Code: CodeSelfVote}
	ErrAlreadyInitialized = &Error{Code: CodeAlreadyInitialized}
	ErrNotInitialized     = &Error{Code: CodeNotInitialized}
	ErrAgentExists        = &Error{Code: CodeAgentExists}
	ErrProgramExists      = &Error{Code: CodeProgramExists}
	ErrProgramNotFound    = &Error{Code: CodeProgramNotFound}
	ErrReportNotFound     = &Error{Code: CodeReportNotFound}
	ErrOverflow           = &Error{Code: CodeOverflow}
)

// CodeOf returns the code of the registry error in err's chain
func CodeOf(err error) (ErrorCode, bool) {
	var regErr *Error
	if errors.As(err, &regErr) {
		return regErr.Code, true
	}
	return 0, false
}

// withOp returns err with the operation name attached if it is a bare
// registry error
func withOp(op string, err error) error {
	regErr, ok := err.(*Error) //nolint:errorlint
	if !ok || regErr.Op != "" {
		return err
	}
	return &Error{
		Code: regErr.Code,
		Op:   op,
		Err:  regErr.Err,
	}
}
