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

package main

import (
	"io"
	"time"

	"github.com/blinklabs-io/nile/database/models"
	"github.com/blinklabs-io/nile/database/types"
	"github.com/blinklabs-io/nile/registry"
	"gopkg.in/yaml.v3"
)

type authorityView struct {
	Admin                string `yaml:"admin"`
	InitializedAt        string `yaml:"initializedAt"`
	AgentCount           uint32 `yaml:"agentCount"`
	TotalScoresSubmitted uint64 `yaml:"totalScoresSubmitted"`
	TotalReports         uint64 `yaml:"totalReports"`
}

type agentView struct {
	Agent        string `yaml:"agent"`
	AuthorizedBy string `yaml:"authorizedBy"`
	AuthorizedAt string `yaml:"authorizedAt"`
	Active       bool   `yaml:"active"`
	Points       uint64 `yaml:"points"`
	TotalScores  uint64 `yaml:"totalScores"`
	TotalReports uint64 `yaml:"totalReports"`
	TotalVotes   uint64 `yaml:"totalVotes"`
}

type programView struct {
	Program      string `yaml:"program"`
	Name         string `yaml:"name"`
	Registrant   string `yaml:"registrant"`
	RegisteredAt string `yaml:"registeredAt"`
	Grade        string `yaml:"grade"`
	TotalScore   uint8  `yaml:"totalScore"`
	Scores       struct {
		Name     uint8 `yaml:"name"`
		Image    uint8 `yaml:"image"`
		Likeness uint8 `yaml:"likeness"`
		Essence  uint8 `yaml:"essence"`
	} `yaml:"scores"`
	ScoreCount   uint32 `yaml:"scoreCount"`
	LastScoredAt string `yaml:"lastScoredAt,omitempty"`
	DetailsURI   string `yaml:"detailsUri,omitempty"`
}

type voteView struct {
	Agent    string `yaml:"agent"`
	Approved bool   `yaml:"approved"`
	VotedAt  string `yaml:"votedAt"`
}

type reportView struct {
	Report         string     `yaml:"report"`
	Program        string     `yaml:"program"`
	Submitter      string     `yaml:"submitter"`
	Sequence       uint64     `yaml:"sequence"`
	EventType      string     `yaml:"eventType"`
	Headline       string     `yaml:"headline"`
	ImpactScore    int8       `yaml:"impactScore"`
	SubmittedAt    string     `yaml:"submittedAt"`
	Status         string     `yaml:"status"`
	Confirmations  uint8      `yaml:"confirmations"`
	Rejections     uint8      `yaml:"rejections"`
	RequiredQuorum uint8      `yaml:"requiredQuorum"`
	FinalizedAt    string     `yaml:"finalizedAt,omitempty"`
	Votes          []voteView `yaml:"votes,omitempty"`
}

func formatTime(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

func identityString(b []byte) string {
	id, err := types.NewIdentityFromBytes(b)
	if err != nil {
		return ""
	}
	return id.String()
}

func newAuthorityView(a *models.Authority) authorityView {
	return authorityView{
		Admin:                a.AdminIdentity().String(),
		InitializedAt:        formatTime(a.InitializedAt),
		AgentCount:           a.AgentCount,
		TotalScoresSubmitted: uint64(a.TotalScoresSubmitted),
		TotalReports:         uint64(a.TotalReports),
	}
}

func newAgentView(a *models.Agent) agentView {
	return agentView{
		Agent:        a.Identity().String(),
		AuthorizedBy: identityString(a.AuthorizedBy),
		AuthorizedAt: formatTime(a.AuthorizedAt),
		Active:       a.Active,
		Points:       uint64(a.Points),
		TotalScores:  uint64(a.TotalScores),
		TotalReports: uint64(a.TotalReports),
		TotalVotes:   uint64(a.TotalVotes),
	}
}

func newProgramView(p *models.Program) programView {
	ret := programView{
		Program:      p.Identity().String(),
		Name:         p.Name,
		Registrant:   identityString(p.Registrant),
		RegisteredAt: formatTime(p.RegisteredAt),
		Grade:        p.Grade,
		TotalScore:   p.TotalScore,
		ScoreCount:   p.ScoreCount,
		LastScoredAt: formatTime(p.LastScoredAt),
		DetailsURI:   p.DetailsUri,
	}
	ret.Scores.Name = p.NameScore
	ret.Scores.Image = p.ImageScore
	ret.Scores.Likeness = p.LikenessScore
	ret.Scores.Essence = p.EssenceScore
	return ret
}

func newReportView(r *models.Report, votes []models.Vote) reportView {
	ret := reportView{
		Report:         r.Identity().String(),
		Program:        r.ProgramIdentity().String(),
		Submitter:      r.SubmitterIdentity().String(),
		Sequence:       uint64(r.Sequence),
		EventType:      r.EventType,
		Headline:       r.Headline,
		ImpactScore:    r.ImpactScore,
		SubmittedAt:    formatTime(r.SubmittedAt),
		Status:         registry.ReportStatusOf(r).String(),
		Confirmations:  r.Confirmations,
		Rejections:     r.Rejections,
		RequiredQuorum: r.RequiredQuorum,
		FinalizedAt:    formatTime(r.FinalizedAt),
	}
	for i := range votes {
		ret.Votes = append(ret.Votes, voteView{
			Agent:    votes[i].AgentIdentity().String(),
			Approved: votes[i].Approved,
			VotedAt:  formatTime(votes[i].VotedAt),
		})
	}
	return ret
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
