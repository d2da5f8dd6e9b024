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
	"github.com/spf13/cobra"
)

func bootstrapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Initialize the registry with the caller as admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := callerIdentity()
			if err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				authority, err := s.registry.Bootstrap(cmd.Context(), caller)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), newAuthorityView(authority))
			})
		},
	}
}

func agentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage scanning agents",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "authorize <agent>",
			Short: "Authorize a new agent (admin only)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				caller, err := callerIdentity()
				if err != nil {
					return err
				}
				agentID, err := parseIdentity("agent", args[0])
				if err != nil {
					return err
				}
				return withSession(cmd, func(s *session) error {
					agent, err := s.registry.AuthorizeAgent(cmd.Context(), caller, agentID)
					if err != nil {
						return err
					}
					return printYAML(cmd.OutOrStdout(), newAgentView(agent))
				})
			},
		},
		&cobra.Command{
			Use:   "show <agent>",
			Short: "Show an agent",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				agentID, err := parseIdentity("agent", args[0])
				if err != nil {
					return err
				}
				return withSession(cmd, func(s *session) error {
					agent, err := s.registry.Agent(cmd.Context(), agentID)
					if err != nil {
						return err
					}
					return printYAML(cmd.OutOrStdout(), newAgentView(agent))
				})
			},
		},
	)
	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List agents by reputation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				agents, err := s.registry.Leaderboard(cmd.Context(), limit)
				if err != nil {
					return err
				}
				views := make([]agentView, 0, len(agents))
				for i := range agents {
					views = append(views, newAgentView(&agents[i]))
				}
				return printYAML(cmd.OutOrStdout(), views)
			})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 0, "maximum number of agents, 0 for all")
	cmd.AddCommand(listCmd)
	return cmd
}

func statsCommand() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show registry totals and the top agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				authority, err := s.registry.Authority(cmd.Context())
				if err != nil {
					return err
				}
				agents, err := s.registry.Leaderboard(cmd.Context(), top)
				if err != nil {
					return err
				}
				out := struct {
					Authority authorityView `yaml:"authority"`
					TopAgents []agentView   `yaml:"topAgents"`
				}{
					Authority: newAuthorityView(authority),
					TopAgents: make([]agentView, 0, len(agents)),
				}
				for i := range agents {
					out.TopAgents = append(out.TopAgents, newAgentView(&agents[i]))
				}
				return printYAML(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "number of agents to show")
	return cmd
}
