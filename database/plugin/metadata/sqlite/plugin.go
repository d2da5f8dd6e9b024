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

package sqlite

import (
	"sync"

	"github.com/blinklabs-io/nile/database/plugin"
)

const DefaultDataDir = ".nile"

var (
	cmdlineOptions struct {
		dataDir string
	}
	cmdlineOptionsMutex sync.RWMutex
)

func initCmdlineOptions() {
	cmdlineOptionsMutex.Lock()
	defer cmdlineOptionsMutex.Unlock()
	cmdlineOptions.dataDir = DefaultDataDir
}

func init() {
	initCmdlineOptions()
	plugin.Register(
		plugin.PluginEntry{
			Type:               plugin.PluginTypeMetadata,
			Name:               "sqlite",
			Description:        "SQLite relational database",
			NewFromOptionsFunc: NewFromCmdlineOptions,
			Options: []plugin.PluginOption{
				{
					Name:         "data-dir",
					Type:         plugin.PluginOptionTypeString,
					Description:  "Data directory for sqlite storage",
					DefaultValue: DefaultDataDir,
					Dest:         &(cmdlineOptions.dataDir),
				},
			},
		},
	)
}

func NewFromCmdlineOptions(env plugin.Env) plugin.Plugin {
	cmdlineOptionsMutex.RLock()
	dataDir := cmdlineOptions.dataDir
	cmdlineOptionsMutex.RUnlock()

	p, err := NewWithOptions(
		WithDataDir(dataDir),
		WithLogger(env.Logger),
		WithPromRegistry(env.PromRegistry),
	)
	if err != nil {
		// Return a plugin that defers the error to Start()
		return plugin.NewErrorPlugin(err)
	}
	return p
}
