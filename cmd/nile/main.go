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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/blinklabs-io/nile/database/plugin"
	"github.com/blinklabs-io/nile/internal/config"
	"github.com/blinklabs-io/nile/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

const (
	programName = "nile"
)

func slogPrintf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...),
		"component", programName,
	)
}

var globalFlags = struct {
	configFile     string
	dataDir        string
	blobPlugin     string
	metadataPlugin string
	caller         string
	debug          bool
}{}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	addSource := false
	if debug {
		logLevel = slog.LevelDebug
		addSource = true
	}
	// Command output goes to stdout, so logs go to stderr
	return slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: addSource,
			Level:     logLevel,
		}),
	)
}

func listAllPlugins() string {
	var buf strings.Builder
	buf.WriteString("Available plugins:\n\n")

	buf.WriteString("Blob Storage Plugins:\n")
	for _, p := range plugin.GetPlugins(plugin.PluginTypeBlob) {
		fmt.Fprintf(&buf, "  %s: %s\n", p.Name, p.Description)
	}

	buf.WriteString("\nMetadata Storage Plugins:\n")
	for _, p := range plugin.GetPlugins(plugin.PluginTypeMetadata) {
		fmt.Fprintf(&buf, "  %s: %s\n", p.Name, p.Description)
	}

	return buf.String()
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all available storage plugins",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), listAllPlugins())
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s %s\n",
				programName,
				version.GetVersionString(),
			)
		},
	}
}

// loadConfig builds the config from file and environment and applies any
// explicitly set command line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(globalFlags.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("data-dir") {
		cfg.DataDir = globalFlags.dataDir
	}
	if flags.Changed("blob") {
		cfg.BlobPlugin = globalFlags.blobPlugin
	}
	if flags.Changed("metadata") {
		cfg.MetadataPlugin = globalFlags.metadataPlugin
	}
	if globalFlags.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func newRootCommand() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Program reputation registry operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&globalFlags.configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().
		StringVar(&globalFlags.dataDir, "data-dir", config.DefaultDataDir, "data directory, empty for an in-memory registry")
	rootCmd.PersistentFlags().
		StringVarP(&globalFlags.blobPlugin, "blob", "b", config.DefaultBlobPlugin, "blob store plugin to use, 'list' to show available")
	rootCmd.PersistentFlags().
		StringVarP(&globalFlags.metadataPlugin, "metadata", "m", config.DefaultMetadataPlugin, "metadata store plugin to use, 'list' to show available")
	rootCmd.PersistentFlags().
		StringVar(&globalFlags.caller, "caller", "", "base58 identity to act as")

	// Add plugin-specific flags
	if err := plugin.PopulateCmdlineOptions(rootCmd.PersistentFlags()); err != nil {
		return nil, fmt.Errorf("error adding plugin flags: %w", err)
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.CheckPluginList(); err != nil {
			return err
		}
		logger := newLogger(cfg.Debug)
		slog.SetDefault(logger)
		// Configure max processes with our logger wrapper, toss undo func
		if _, err := maxprocs.Set(maxprocs.Logger(slogPrintf)); err != nil {
			return err
		}
		logger.Debug(
			"version: "+version.GetVersionString(),
			"component", programName,
		)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	}

	rootCmd.AddCommand(bootstrapCommand())
	rootCmd.AddCommand(agentCommand())
	rootCmd.AddCommand(programCommand())
	rootCmd.AddCommand(reportCommand())
	rootCmd.AddCommand(statsCommand())
	rootCmd.AddCommand(listCommand())
	rootCmd.AddCommand(versionCommand())
	return rootCmd, nil
}

func main() {
	rootCmd, err := newRootCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, config.ErrPluginListRequested) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
