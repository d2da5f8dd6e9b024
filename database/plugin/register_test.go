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
	"testing"

	"github.com/blinklabs-io/nile/database/plugin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock plugin implementation for testing
type mockPlugin struct {
	env plugin.Env
}

func (m *mockPlugin) Start() error { return nil }
func (m *mockPlugin) Stop() error  { return nil }

func newMockPlugin(env plugin.Env) plugin.Plugin {
	return &mockPlugin{env: env}
}

func pluginNames(entries []plugin.PluginEntry) []string {
	ret := make([]string, 0, len(entries))
	for _, entry := range entries {
		ret = append(ret, entry.Name)
	}
	return ret
}

func TestRegister(t *testing.T) {
	pluginName := "test-plugin-" + t.Name()
	plugin.Register(plugin.PluginEntry{
		Type:               plugin.PluginTypeBlob,
		Name:               pluginName,
		NewFromOptionsFunc: newMockPlugin,
	})

	assert.NotNil(t, plugin.GetPlugin(plugin.PluginTypeBlob, pluginName, plugin.Env{}))
	assert.Contains(t, pluginNames(plugin.GetPlugins(plugin.PluginTypeBlob)), pluginName)
	assert.NotContains(t, pluginNames(plugin.GetPlugins(plugin.PluginTypeMetadata)), pluginName)
}

func TestGetPlugins(t *testing.T) {
	blobName1 := "blob-test-1-" + t.Name()
	blobName2 := "blob-test-2-" + t.Name()
	metaName := "meta-test-" + t.Name()
	for _, entry := range []plugin.PluginEntry{
		{Type: plugin.PluginTypeBlob, Name: blobName1, NewFromOptionsFunc: newMockPlugin},
		{Type: plugin.PluginTypeBlob, Name: blobName2, NewFromOptionsFunc: newMockPlugin},
		{Type: plugin.PluginTypeMetadata, Name: metaName, NewFromOptionsFunc: newMockPlugin},
	} {
		plugin.Register(entry)
	}

	blobNames := pluginNames(plugin.GetPlugins(plugin.PluginTypeBlob))
	assert.Contains(t, blobNames, blobName1)
	assert.Contains(t, blobNames, blobName2)
	assert.Contains(t, pluginNames(plugin.GetPlugins(plugin.PluginTypeMetadata)), metaName)
}

func TestGetPluginPassesEnv(t *testing.T) {
	pluginName := "test-get-plugin-" + t.Name()
	plugin.Register(plugin.PluginEntry{
		Type:               plugin.PluginTypeBlob,
		Name:               pluginName,
		NewFromOptionsFunc: newMockPlugin,
	})

	promRegistry := prometheus.NewRegistry()
	p := plugin.GetPlugin(
		plugin.PluginTypeBlob,
		pluginName,
		plugin.Env{PromRegistry: promRegistry},
	)
	require.NotNil(t, p)
	mock, ok := p.(*mockPlugin)
	require.True(t, ok, "expected *mockPlugin, got %T", p)
	assert.Equal(t, promRegistry, mock.env.PromRegistry)

	assert.Nil(t, plugin.GetPlugin(plugin.PluginTypeBlob, "non-existent-"+t.Name(), plugin.Env{}))
}

type optionTestDest struct {
	name    string
	enabled bool
	count   int
	size    uint64
}

func registerOptionPlugin(t *testing.T, pluginName string) *optionTestDest {
	t.Helper()
	dest := &optionTestDest{}
	plugin.Register(plugin.PluginEntry{
		Type:               plugin.PluginTypeMetadata,
		Name:               pluginName,
		NewFromOptionsFunc: newMockPlugin,
		Options: []plugin.PluginOption{
			{Name: "name", Type: plugin.PluginOptionTypeString, DefaultValue: "default", Dest: &dest.name},
			{Name: "enabled", Type: plugin.PluginOptionTypeBool, DefaultValue: false, Dest: &dest.enabled},
			{Name: "count", Type: plugin.PluginOptionTypeInt, DefaultValue: 3, Dest: &dest.count},
			{Name: "size", Type: plugin.PluginOptionTypeUint, DefaultValue: uint64(7), Dest: &dest.size},
		},
	})
	return dest
}

func TestPopulateCmdlineOptions(t *testing.T) {
	dest := registerOptionPlugin(t, "opts")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, plugin.PopulateCmdlineOptions(fs))
	assert.Equal(t, "default", dest.name)
	assert.Equal(t, 3, dest.count)
	assert.Equal(t, uint64(7), dest.size)

	require.NoError(t, fs.Parse([]string{
		"--metadata-opts-name", "custom",
		"--metadata-opts-enabled",
		"--metadata-opts-count", "9",
		"--metadata-opts-size", "11",
	}))
	assert.Equal(t, &optionTestDest{name: "custom", enabled: true, count: 9, size: 11}, dest)
}

func TestProcessEnvVars(t *testing.T) {
	dest := registerOptionPlugin(t, "env-opts")
	t.Setenv("NILE_METADATA_ENV_OPTS_NAME", "from-env")
	t.Setenv("NILE_METADATA_ENV_OPTS_ENABLED", "true")
	t.Setenv("NILE_METADATA_ENV_OPTS_SIZE", "42")
	require.NoError(t, plugin.ProcessEnvVars())
	assert.Equal(t, "from-env", dest.name)
	assert.True(t, dest.enabled)
	assert.Equal(t, uint64(42), dest.size)

	t.Setenv("NILE_METADATA_ENV_OPTS_COUNT", "many")
	require.Error(t, plugin.ProcessEnvVars())
}

func TestProcessConfig(t *testing.T) {
	dest := registerOptionPlugin(t, "config-opts")
	require.NoError(t, plugin.ProcessConfig(map[string]map[string]map[string]any{
		"metadata": {
			"config-opts": {"name": "from-config", "count": 5},
			"unrelated":   {"name": "ignored"},
		},
	}))
	assert.Equal(t, "from-config", dest.name)
	assert.Equal(t, 5, dest.count)

	require.Error(t, plugin.ProcessConfig(map[string]map[string]map[string]any{
		"metadata": {"config-opts": {"enabled": "yes"}},
	}))
}
