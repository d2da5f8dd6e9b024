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

package gcs

import (
	"sync"

	"github.com/blinklabs-io/nile/database/plugin"
)

var (
	cmdlineOptions struct {
		bucket          string
		prefix          string
		credentialsFile string
	}
	cmdlineOptionsMutex sync.RWMutex
)

// Register plugin
func init() {
	plugin.Register(
		plugin.PluginEntry{
			Type:               plugin.PluginTypeBlob,
			Name:               "gcs",
			Description:        "Google Cloud Storage object store",
			NewFromOptionsFunc: NewFromCmdlineOptions,
			Options: []plugin.PluginOption{
				{
					Name:         "bucket",
					Type:         plugin.PluginOptionTypeString,
					Description:  "GCS bucket name",
					DefaultValue: "",
					Dest:         &(cmdlineOptions.bucket),
				},
				{
					Name:         "prefix",
					Type:         plugin.PluginOptionTypeString,
					Description:  "GCS object name prefix",
					DefaultValue: "",
					Dest:         &(cmdlineOptions.prefix),
				},
				{
					Name:         "credentials-file",
					Type:         plugin.PluginOptionTypeString,
					Description:  "Service account credentials file",
					DefaultValue: "",
					Dest:         &(cmdlineOptions.credentialsFile),
				},
			},
		},
	)
}

func NewFromCmdlineOptions(env plugin.Env) plugin.Plugin {
	cmdlineOptionsMutex.RLock()
	opts := []BlobStoreGCSOptionFunc{
		WithLogger(env.Logger),
		WithPromRegistry(env.PromRegistry),
		WithBucket(cmdlineOptions.bucket),
		WithPrefix(cmdlineOptions.prefix),
		WithCredentialsFile(cmdlineOptions.credentialsFile),
	}
	cmdlineOptionsMutex.RUnlock()
	p, err := NewWithOptions(opts...)
	if err != nil {
		// Return a plugin that defers the error to Start()
		return plugin.NewErrorPlugin(err)
	}
	return p
}
