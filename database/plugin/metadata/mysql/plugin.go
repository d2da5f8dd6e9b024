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

package mysql

import (
	"sync"

	"github.com/blinklabs-io/nile/database/plugin"
)

var (
	cmdlineOptions struct {
		host     string
		port     uint64
		user     string
		password string
		database string
		sslMode  string
		timeZone string
		dsn      string
	}
	cmdlineOptionsMutex sync.RWMutex
)

// initCmdlineOptions sets default values for cmdlineOptions
func initCmdlineOptions() {
	cmdlineOptionsMutex.Lock()
	defer cmdlineOptionsMutex.Unlock()
	cmdlineOptions.host = "localhost"
	cmdlineOptions.port = 3306
	cmdlineOptions.user = "root"
	cmdlineOptions.database = "nile"
	cmdlineOptions.timeZone = "UTC"
}

func init() {
	initCmdlineOptions()
	plugin.Register(
		plugin.PluginEntry{
			Type:               plugin.PluginTypeMetadata,
			Name:               "mysql",
			Description:        "MySQL relational database (requires a running server)",
			NewFromOptionsFunc: NewFromCmdlineOptions,
			Options: []plugin.PluginOption{
				{
					Name:         "host",
					Type:         plugin.PluginOptionTypeString,
					Description:  "MySQL host",
					DefaultValue: "localhost",
					Dest:         &(cmdlineOptions.host),
				},
				{
					Name:         "port",
					Type:         plugin.PluginOptionTypeUint,
					Description:  "MySQL port",
					DefaultValue: uint64(3306),
					Dest:         &(cmdlineOptions.port),
				},
				{
					Name:         "user",
					Type:         plugin.PluginOptionTypeString,
					Description:  "MySQL user",
					DefaultValue: "root",
					Dest:         &(cmdlineOptions.user),
				},
				{
					Name:         "password",
					Type:         plugin.PluginOptionTypeString,
					Description:  "MySQL password",
					DefaultValue: "",
					Dest:         &(cmdlineOptions.password),
				},
				{
					Name:         "database",
					Type:         plugin.PluginOptionTypeString,
					Description:  "MySQL database name, created if missing",
					DefaultValue: "nile",
					Dest:         &(cmdlineOptions.database),
				},
				{
					Name:         "ssl-mode",
					Type:         plugin.PluginOptionTypeString,
					Description:  "MySQL TLS config name (true, false, skip-verify, preferred)",
					DefaultValue: "",
					Dest:         &(cmdlineOptions.sslMode),
				},
				{
					Name:         "timezone",
					Type:         plugin.PluginOptionTypeString,
					Description:  "MySQL connection time zone",
					DefaultValue: "UTC",
					Dest:         &(cmdlineOptions.timeZone),
				},
				{
					Name:         "dsn",
					Type:         plugin.PluginOptionTypeString,
					Description:  "Full MySQL DSN (overrides other options when set)",
					DefaultValue: "",
					Dest:         &(cmdlineOptions.dsn),
				},
			},
		},
	)
}

func NewFromCmdlineOptions(env plugin.Env) plugin.Plugin {
	cmdlineOptionsMutex.RLock()
	opts := []MysqlOptionFunc{
		WithHost(cmdlineOptions.host),
		WithPort(uint(cmdlineOptions.port)),
		WithUser(cmdlineOptions.user),
		WithPassword(cmdlineOptions.password),
		WithDatabase(cmdlineOptions.database),
		WithSSLMode(cmdlineOptions.sslMode),
		WithTimeZone(cmdlineOptions.timeZone),
		WithDSN(cmdlineOptions.dsn),
		WithLogger(env.Logger),
		WithPromRegistry(env.PromRegistry),
	}
	cmdlineOptionsMutex.RUnlock()
	p, err := NewWithOptions(opts...)
	if err != nil {
		// Return a plugin that defers the error to Start()
		return plugin.NewErrorPlugin(err)
	}
	return p
}
