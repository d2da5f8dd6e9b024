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
	"errors"
	"fmt"
)

type Plugin interface {
	Start() error
	Stop() error
}

// ErrorPlugin is a plugin that always returns an error on Start()
type ErrorPlugin struct {
	Err error
}

func (e *ErrorPlugin) Start() error {
	return e.Err
}

func (e *ErrorPlugin) Stop() error {
	return nil
}

// NewErrorPlugin creates a new error plugin that returns the given error on Start()
func NewErrorPlugin(err error) Plugin {
	return &ErrorPlugin{Err: err}
}

// StartPlugin gets a plugin from the registry and starts it
func StartPlugin(
	pluginType PluginType,
	pluginName string,
	env Env,
) (Plugin, error) {
	p := GetPlugin(pluginType, pluginName, env)
	if p == nil {
		return nil, fmt.Errorf(
			"%s plugin '%s' not found",
			PluginTypeName(pluginType),
			pluginName,
		)
	}
	if err := p.Start(); err != nil {
		return nil, fmt.Errorf(
			"failed to start %s plugin '%s': %w",
			PluginTypeName(pluginType),
			pluginName,
			err,
		)
	}
	return p, nil
}

// SetPluginOption sets the value of a named option for a plugin entry. This
// is used by callers that need to programmatically override plugin defaults
// (for example to set data-dir before starting a plugin). It returns an error
// if the plugin is not found or if the value type is incompatible. Unknown
// options are ignored, since not every option applies to every implementation.
// NOTE: This function writes to the global plugin option destinations without
// synchronization and must only be called during initialization.
func SetPluginOption(
	pluginType PluginType,
	pluginName string,
	optionName string,
	value any,
) error {
	for i := range pluginEntries {
		p := &pluginEntries[i]
		if p.Type != pluginType || p.Name != pluginName {
			continue
		}
		for _, opt := range p.Options {
			if opt.Name != optionName {
				continue
			}
			if opt.Dest == nil {
				return fmt.Errorf("nil destination for option %s", optionName)
			}
			switch opt.Type {
			case PluginOptionTypeString:
				return assignOption[string](opt.Dest, value, optionName)
			case PluginOptionTypeBool:
				return assignOption[bool](opt.Dest, value, optionName)
			case PluginOptionTypeInt:
				return assignOption[int](opt.Dest, value, optionName)
			case PluginOptionTypeUint:
				// accept uint64 or int
				if tv, ok := value.(int); ok {
					if tv < 0 {
						return fmt.Errorf("invalid value for option %s: negative int", optionName)
					}
					value = uint64(tv)
				}
				return assignOption[uint64](opt.Dest, value, optionName)
			default:
				return fmt.Errorf(
					"unknown plugin option type %d for option %s",
					opt.Type,
					optionName,
				)
			}
		}
		return nil
	}
	return fmt.Errorf(
		"plugin %s of type %s not found",
		pluginName,
		PluginTypeName(pluginType),
	)
}

func assignOption[T any](dest any, value any, optionName string) error {
	v, ok := value.(T)
	if !ok {
		return fmt.Errorf(
			"invalid type for option %s: expected %T, got %T",
			optionName,
			*new(T),
			value,
		)
	}
	d, ok := dest.(*T)
	if !ok {
		return fmt.Errorf(
			"invalid destination type for option %s: expected *%T",
			optionName,
			*new(T),
		)
	}
	if d == nil {
		return errors.New("nil destination pointer for option " + optionName)
	}
	*d = v
	return nil
}
