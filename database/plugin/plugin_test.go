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

package plugin_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/blinklabs-io/nile/database/plugin"
	_ "github.com/blinklabs-io/nile/database/plugin/blob/badger"
	_ "github.com/blinklabs-io/nile/database/plugin/metadata/sqlite"
	"github.com/blinklabs-io/nile/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPluginOption_SuccessAndTypeCheck(t *testing.T) {
	// Mutates global plugin option state, so this must not run in parallel

	// Empty data dir selects an in-memory store
	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeMetadata, config.DefaultMetadataPlugin, "data-dir", ""))
	require.Error(t, plugin.SetPluginOption(plugin.PluginTypeMetadata, config.DefaultMetadataPlugin, "data-dir", 123))

	// Unknown options are ignored
	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeMetadata, config.DefaultMetadataPlugin, "does-not-exist", "x"))

	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeBlob, config.DefaultBlobPlugin, "data-dir", t.TempDir()))
	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeBlob, config.DefaultBlobPlugin, "block-cache-size", uint64(100000000)))
	// Uint options also take non-negative ints as decoded from YAML
	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeBlob, config.DefaultBlobPlugin, "index-cache-size", 1000))
	require.Error(t, plugin.SetPluginOption(plugin.PluginTypeBlob, config.DefaultBlobPlugin, "index-cache-size", -1))
	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeBlob, config.DefaultBlobPlugin, "gc", true))

	require.Error(t, plugin.SetPluginOption(plugin.PluginTypeMetadata, "nonexistent", "data-dir", t.TempDir()))

	// Leave the shared plugins in-memory for other tests
	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeBlob, config.DefaultBlobPlugin, "data-dir", ""))
}

func TestStartPlugin(t *testing.T) {
	_, err := plugin.StartPlugin(plugin.PluginTypeBlob, "nonexistent", plugin.Env{})
	require.Error(t, err)

	startErr := errors.New("broken")
	pluginName := "error-plugin-" + t.Name()
	plugin.Register(plugin.PluginEntry{
		Type: plugin.PluginTypeBlob,
		Name: pluginName,
		NewFromOptionsFunc: func(plugin.Env) plugin.Plugin {
			return plugin.NewErrorPlugin(startErr)
		},
	})
	_, err = plugin.StartPlugin(plugin.PluginTypeBlob, pluginName, plugin.Env{})
	require.ErrorIs(t, err, startErr)

	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeMetadata, config.DefaultMetadataPlugin, "data-dir", ""))
	p, err := plugin.StartPlugin(
		plugin.PluginTypeMetadata,
		config.DefaultMetadataPlugin,
		plugin.Env{Logger: slog.Default()},
	)
	require.NoError(t, err)
	assert.NoError(t, p.Stop())
}
