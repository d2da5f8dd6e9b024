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

package config

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/blinklabs-io/nile/database/plugin"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "nile.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

const (
	DefaultDataDir        = ".nile"
	DefaultBlobPlugin     = "badger"
	DefaultMetadataPlugin = "sqlite"

	envPrefix = "nile"
)

// ErrPluginListRequested is returned when the user asked for the list of
// available storage plugins instead of a value
var ErrPluginListRequested = errors.New("plugin list requested")

type tempConfig struct {
	Config   *yaml.Node                `yaml:"config,omitempty"`
	Database *databaseConfig           `yaml:"database,omitempty"`
	Blob     map[string]map[string]any `yaml:"blob,omitempty"`
	Metadata map[string]map[string]any `yaml:"metadata,omitempty"`
}

type databaseConfig struct {
	Blob     map[string]any `yaml:"blob,omitempty"`
	Metadata map[string]any `yaml:"metadata,omitempty"`
}

type Config struct {
	// An empty data dir keeps all state in memory
	DataDir        string `yaml:"dataDir"        split_words:"true"`
	BlobPlugin     string `yaml:"blobPlugin"     envconfig:"NILE_DATABASE_BLOB_PLUGIN"`
	MetadataPlugin string `yaml:"metadataPlugin" envconfig:"NILE_DATABASE_METADATA_PLUGIN"`
	MetricsFile    string `yaml:"metricsFile"    split_words:"true"`
	EventLogFile   string `yaml:"eventLogFile"   split_words:"true"`
	Debug          bool   `yaml:"debug"`

	// Tracing exports spans over OTLP/HTTP, configured by the standard
	// OTEL_EXPORTER_OTLP_* env vars
	Tracing       bool `yaml:"tracing"`
	TracingStdout bool `yaml:"tracingStdout" split_words:"true"`
}

func defaultConfig() *Config {
	return &Config{
		DataDir:        DefaultDataDir,
		BlobPlugin:     DefaultBlobPlugin,
		MetadataPlugin: DefaultMetadataPlugin,
	}
}

// CheckPluginList prints the available plugins of a type when its plugin
// name is "list"
func (c *Config) CheckPluginList() error {
	for _, check := range []struct {
		name       string
		pluginType plugin.PluginType
	}{
		{c.BlobPlugin, plugin.PluginTypeBlob},
		{c.MetadataPlugin, plugin.PluginTypeMetadata},
	} {
		if check.name != "list" {
			continue
		}
		fmt.Printf(
			"Available %s plugins:\n",
			plugin.PluginTypeName(check.pluginType),
		)
		for _, p := range plugin.GetPlugins(check.pluginType) {
			fmt.Printf("  %s: %s\n", p.Name, p.Description)
		}
		return ErrPluginListRequested
	}
	return nil
}

// findConfigFile looks for ~/.nile/nile.yaml and then /etc/nile/nile.yaml
func findConfigFile() string {
	if homeDir, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(homeDir, ".nile", "nile.yaml")
		if _, err := os.Stat(userPath); err == nil {
			return userPath
		}
	}
	systemPath := "/etc/nile/nile.yaml"
	if _, err := os.Stat(systemPath); err == nil {
		return systemPath
	}
	return ""
}

// LoadConfig builds the configuration from defaults, the config file and
// the environment, in that order. Plugin options found in the file or the
// environment are applied to the plugin registry.
func LoadConfig(configFile string) (*Config, error) {
	cfg := defaultConfig()
	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		if err := loadConfigFile(cfg, configFile); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if err := plugin.ProcessEnvVars(); err != nil {
		return nil, fmt.Errorf(
			"error processing plugin environment variables: %w",
			err,
		)
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, configFile string) error {
	buf, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	var tempCfg tempConfig
	if err := yaml.Unmarshal(buf, &tempCfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	if tempCfg.Config != nil {
		// Decode the config section over the defaults
		if err := tempCfg.Config.Decode(cfg); err != nil {
			return fmt.Errorf("error parsing config section: %w", err)
		}
	} else if err := yaml.Unmarshal(buf, cfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	pluginConfig := make(map[string]map[string]map[string]any)
	if tempCfg.Blob != nil {
		pluginConfig["blob"] = tempCfg.Blob
	}
	if tempCfg.Metadata != nil {
		pluginConfig["metadata"] = tempCfg.Metadata
	}
	if tempCfg.Database != nil {
		if tempCfg.Database.Blob != nil {
			if name := databasePluginConfig(
				pluginConfig,
				"blob",
				tempCfg.Database.Blob,
			); name != "" {
				cfg.BlobPlugin = name
			}
		}
		if tempCfg.Database.Metadata != nil {
			if name := databasePluginConfig(
				pluginConfig,
				"metadata",
				tempCfg.Database.Metadata,
			); name != "" {
				cfg.MetadataPlugin = name
			}
		}
	}
	if len(pluginConfig) > 0 {
		if err := plugin.ProcessConfig(pluginConfig); err != nil {
			return fmt.Errorf("error processing plugin config: %w", err)
		}
	}
	return nil
}

// databasePluginConfig merges one part of the database section into the
// plugin config and returns the plugin name it selects, if any
func databasePluginConfig(
	pluginConfig map[string]map[string]map[string]any,
	typeName string,
	section map[string]any,
) string {
	var pluginName string
	if pluginVal, ok := section["plugin"]; ok {
		if name, ok := pluginVal.(string); ok {
			pluginName = name
		}
	}
	typeConfig := make(map[string]map[string]any)
	for k, v := range section {
		if k == "plugin" {
			continue
		}
		switch val := v.(type) {
		case map[string]any:
			typeConfig[k] = val
		case map[any]any:
			stringAnyMap := make(map[string]any)
			for vk, vv := range val {
				if keyStr, ok := vk.(string); ok {
					stringAnyMap[keyStr] = vv
				}
			}
			typeConfig[k] = stringAnyMap
		default:
			fmt.Fprintf(
				os.Stderr,
				"warning: skipping %s config entry %q: expected map, got %T\n",
				typeName,
				k,
				v,
			)
		}
	}
	if pluginConfig[typeName] == nil {
		pluginConfig[typeName] = typeConfig
	} else {
		maps.Copy(pluginConfig[typeName], typeConfig)
	}
	return pluginName
}
