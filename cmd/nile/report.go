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

func reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "File and vote on incident reports",
	}
	cmd.AddCommand(
		reportSubmitCommand(),
		reportVoteCommand(),
		&cobra.Command{
			Use:   "show <report>",
			Short: "Show a report and its votes",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				reportID, err := parseIdentity("report", args[0])
				if err != nil {
					return err
				}
				return withSession(cmd, func(s *session) error {
					report, err := s.registry.Report(cmd.Context(), reportID)
					if err != nil {
						return err
					}
					votes, err := s.registry.ReportVotes(cmd.Context(), reportID)
					if err != nil {
						return err
					}
					return printYAML(cmd.OutOrStdout(), newReportView(report, votes))
				})
			},
		},
		&cobra.Command{
			Use:   "list <program>",
			Short: "List the reports filed against a program, newest first",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				programID, err := parseIdentity("program", args[0])
				if err != nil {
					return err
				}
				return withSession(cmd, func(s *session) error {
					reports, err := s.registry.Reports(cmd.Context(), programID)
					if err != nil {
						return err
					}
					views := make([]reportView, 0, len(reports))
					for i := range reports {
						views = append(views, newReportView(&reports[i], nil))
					}
					return printYAML(cmd.OutOrStdout(), views)
				})
			},
		},
	)
	return cmd
}

func reportSubmitCommand() *cobra.Command {
	var eventType, headline string
	var impact int8
	cmd := &cobra.Command{
		Use:   "submit <program>",
		Short: "Submit an incident report (agents only)",
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
				report, err := s.registry.SubmitReport(
					cmd.Context(),
					caller,
					programID,
					eventType,
					headline,
					impact,
				)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), newReportView(report, nil))
			})
		},
	}
	cmd.Flags().StringVar(&eventType, "event-type", "", "short event category")
	cmd.Flags().StringVar(&headline, "headline", "", "one line summary")
	cmd.Flags().Int8Var(&impact, "impact", 0, "impact score (-100 to 100)")
	return cmd
}

func reportVoteCommand() *cobra.Command {
	var reject bool
	cmd := &cobra.Command{
		Use:   "vote <report>",
		Short: "Confirm or reject a report (agents only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := callerIdentity()
			if err != nil {
				return err
			}
			reportID, err := parseIdentity("report", args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				report, err := s.registry.VoteReport(
					cmd.Context(),
					caller,
					reportID,
					!reject,
				)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), newReportView(report, nil))
			})
		},
	}
	cmd.Flags().BoolVar(&reject, "reject", false, "vote to reject instead of confirm")
	return cmd
}
