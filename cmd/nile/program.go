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
	"github.com/blinklabs-io/nile/score"
	"github.com/spf13/cobra"
)

func programCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "program",
		Short: "Register and score programs",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "register <program> <name>",
			Short: "Register a program",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				caller, err := callerIdentity()
				if err != nil {
					return err
				}
				programID, err := parseIdentity("program", args[0])
				if err != nil {
					return err
				}
				return withSession(cmd, func(s *session) error {
					program, err := s.registry.RegisterProgram(
						cmd.Context(),
						caller,
						programID,
						args[1],
					)
					if err != nil {
						return err
					}
					return printYAML(cmd.OutOrStdout(), newProgramView(program))
				})
			},
		},
		&cobra.Command{
			Use:   "show <program>",
			Short: "Show a program profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				programID, err := parseIdentity("program", args[0])
				if err != nil {
					return err
				}
				return withSession(cmd, func(s *session) error {
					program, err := s.registry.Program(cmd.Context(), programID)
					if err != nil {
						return err
					}
					return printYAML(cmd.OutOrStdout(), newProgramView(program))
				})
			},
		},
		programScoreCommand(),
	)
	return cmd
}

func programScoreCommand() *cobra.Command {
	var scores score.SubScores
	var detailsURI string
	cmd := &cobra.Command{
		Use:   "score <program>",
		Short: "Submit a score for a program (agents only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := callerIdentity()
			if err != nil {
				return err
			}
			programID, err := parseIdentity("program", args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				program, err := s.registry.SubmitScore(
					cmd.Context(),
					caller,
					programID,
					scores,
					detailsURI,
				)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), newProgramView(program))
			})
		},
	}
	cmd.Flags().Uint8Var(&scores.Name, "name", 0, "name sub-score (0-100)")
	cmd.Flags().Uint8Var(&scores.Image, "image", 0, "image sub-score (0-100)")
	cmd.Flags().Uint8Var(&scores.Likeness, "likeness", 0, "likeness sub-score (0-100)")
	cmd.Flags().Uint8Var(&scores.Essence, "essence", 0, "essence sub-score (0-100)")
	cmd.Flags().StringVar(&detailsURI, "details", "", "URI of the full assessment")
	return cmd
}
