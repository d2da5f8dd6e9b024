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
	"github.com/blinklabs-io/nile/event"
)

const (
	AgentAuthorizedEventType   event.EventType = "registry.agent_authorized"
	ProgramRegisteredEventType event.EventType = "registry.program_registered"
	ScoreSubmittedEventType    event.EventType = "registry.score_submitted"
	ReportSubmittedEventType   event.EventType = "registry.report_submitted"
	ReportVotedEventType       event.EventType = "registry.report_voted"
	ReportFinalizedEventType   event.EventType = "registry.report_finalized"
)

type AgentAuthorizedEvent struct {
	Agent        string
	AuthorizedBy string
	AgentCount   uint32
}

type ProgramRegisteredEvent struct {
	Program    string
	Registrant string
	Name       string
}

type ScoreSubmittedEvent struct {
	Program    string
	Agent      string
	Grade      string
	TotalScore uint8
	ScoreCount uint32
}

type ReportSubmittedEvent struct {
	Report         string
	Program        string
	Submitter      string
	EventType      string
	ImpactScore    int8
	RequiredQuorum uint8
}

type ReportVotedEvent struct {
	Report        string
	Agent         string
	Approved      bool
	Confirmations uint8
	Rejections    uint8
}

type ReportFinalizedEvent struct {
	Report   string
	Program  string
	Accepted bool
}

// publish sends an event if an event bus is configured
func (r *Registry) publish(eventType event.EventType, data any) {
	if r.eventBus == nil {
		return
	}
	r.eventBus.Publish(
		eventType,
		event.NewEventWithTimestamp(eventType, data, r.clock.Now()),
	)
}
