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

package plugin

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

type PluginType int

const (
	PluginTypeBlob PluginType = iota + 1
	PluginTypeMetadata
)

const envVarPrefix = "NILE"

func PluginTypeName(pluginType PluginType) string {
	switch pluginType {
	case PluginTypeBlob:
		return "blob"
	case PluginTypeMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

type PluginOptionType int

const (
	PluginOptionTypeString PluginOptionType = iota + 1
	PluginOptionTypeBool
	PluginOptionTypeInt
	PluginOptionTypeUint
)

type PluginOption struct {
	DefaultValue any
	Dest         any
	Name         string
	Description  string
	Type         PluginOptionType
}

// Env carries the shared runtime handles given to a plugin when it is built.
// Either field may be nil.
type Env struct {
	Logger       *slog.Logger
	PromRegistry prometheus.Registerer
}

type PluginEntry struct {
	NewFromOptionsFunc func(Env) Plugin
	Name               string
	Description        string
	Options            []PluginOption
	Type               PluginType
}

var pluginEntries []PluginEntry

// Register adds a plugin entry to the registry. It's intended to be called
// from package init functions.
func Register(pluginEntry PluginEntry) {
	pluginEntries = append(pluginEntries, pluginEntry)
}

// GetPlugins returns all registered plugin entries of the given type
func GetPlugins(pluginType PluginType) []PluginEntry {
	ret := []PluginEntry{}
	for _, p := range pluginEntries {
		if p.Type == pluginType {
			ret = append(ret, p)
		}
	}
	return ret
}

// GetPlugin builds a new instance of the named plugin from its current
// options. It returns nil if no such plugin is registered.
func GetPlugin(pluginType PluginType, pluginName string, env Env) Plugin {
	for _, p := range pluginEntries {
		if p.Type == pluginType && p.Name == pluginName {
			return p.NewFromOptionsFunc(env)
		}
	}
	return nil
}

func optionFlagName(p PluginEntry, opt PluginOption) string {
	return fmt.Sprintf("%s-%s-%s", PluginTypeName(p.Type), p.Name, opt.Name)
}

func optionEnvVarName(p PluginEntry, opt PluginOption) string {
	ret := fmt.Sprintf(
		"%s_%s_%s_%s",
		envVarPrefix,
		PluginTypeName(p.Type),
		p.Name,
		opt.Name,
	)
	return strings.ToUpper(strings.ReplaceAll(ret, "-", "_"))
}

// PopulateCmdlineOptions adds a flag for every plugin option to the given flag set
func PopulateCmdlineOptions(fs *pflag.FlagSet) error {
	for _, p := range pluginEntries {
		for _, opt := range p.Options {
			flagName := optionFlagName(p, opt)
			switch opt.Type {
			case PluginOptionTypeString:
				dest, ok := opt.Dest.(*string)
				if !ok {
					return fmt.Errorf("invalid destination type for option %s", flagName)
				}
				def, _ := opt.DefaultValue.(string)
				fs.StringVar(dest, flagName, def, opt.Description)
			case PluginOptionTypeBool:
				dest, ok := opt.Dest.(*bool)
				if !ok {
					return fmt.Errorf("invalid destination type for option %s", flagName)
				}
				def, _ := opt.DefaultValue.(bool)
				fs.BoolVar(dest, flagName, def, opt.Description)
			case PluginOptionTypeInt:
				dest, ok := opt.Dest.(*int)
				if !ok {
					return fmt.Errorf("invalid destination type for option %s", flagName)
				}
				def, _ := opt.DefaultValue.(int)
				fs.IntVar(dest, flagName, def, opt.Description)
			case PluginOptionTypeUint:
				dest, ok := opt.Dest.(*uint64)
				if !ok {
					return fmt.Errorf("invalid destination type for option %s", flagName)
				}
				def, _ := opt.DefaultValue.(uint64)
				fs.Uint64Var(dest, flagName, def, opt.Description)
			default:
				return fmt.Errorf(
					"unknown plugin option type %d for option %s",
					opt.Type,
					flagName,
				)
			}
		}
	}
	return nil
}

// ProcessEnvVars applies plugin options from environment variables of the
// form NILE_<TYPE>_<PLUGIN>_<OPTION>
func ProcessEnvVars() error {
	for _, p := range pluginEntries {
		for _, opt := range p.Options {
			envName := optionEnvVarName(p, opt)
			val, ok := os.LookupEnv(envName)
			if !ok {
				continue
			}
			var value any
			switch opt.Type {
			case PluginOptionTypeString:
				value = val
			case PluginOptionTypeBool:
				tmpVal, err := strconv.ParseBool(val)
				if err != nil {
					return fmt.Errorf("invalid value for %s: %w", envName, err)
				}
				value = tmpVal
			case PluginOptionTypeInt:
				tmpVal, err := strconv.Atoi(val)
				if err != nil {
					return fmt.Errorf("invalid value for %s: %w", envName, err)
				}
				value = tmpVal
			case PluginOptionTypeUint:
				tmpVal, err := strconv.ParseUint(val, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid value for %s: %w", envName, err)
				}
				value = tmpVal
			}
			if err := SetPluginOption(p.Type, p.Name, opt.Name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// ProcessConfig applies plugin options from a parsed config file. The map is
// keyed by plugin type name, then plugin name, then option name.
func ProcessConfig(pluginConfig map[string]map[string]map[string]any) error {
	for _, p := range pluginEntries {
		typeConfig, ok := pluginConfig[PluginTypeName(p.Type)]
		if !ok {
			continue
		}
		options, ok := typeConfig[p.Name]
		if !ok {
			continue
		}
		for optName, optValue := range options {
			if err := SetPluginOption(p.Type, p.Name, optName, optValue); err != nil {
				return err
			}
		}
	}
	return nil
}
