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
	"os"
	"path/filepath"
	"testing"

	_ "github.com/blinklabs-io/nile/database/plugin/blob/badger"
	_ "github.com/blinklabs-io/nile/database/plugin/metadata/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test-nile.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0o600))
	return tmpFile
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, "{}\n"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "flat",
			content: `
dataDir: /var/lib/nile
metricsFile: /tmp/nile.prom
debug: true
`,
		},
		{
			name: "config section",
			content: `
config:
  dataDir: /var/lib/nile
  metricsFile: /tmp/nile.prom
  debug: true
`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfigFile(t, tc.content))
			require.NoError(t, err)
			assert.Equal(t, &Config{
				DataDir:        "/var/lib/nile",
				BlobPlugin:     DefaultBlobPlugin,
				MetadataPlugin: DefaultMetadataPlugin,
				MetricsFile:    "/tmp/nile.prom",
				Debug:          true,
			}, cfg)
		})
	}
}

func TestLoadConfigSectionKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, `
config:
  metadataPlugin: postgres
`))
	require.NoError(t, err)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultBlobPlugin, cfg.BlobPlugin)
	assert.Equal(t, "postgres", cfg.MetadataPlugin)
}

func TestLoadConfigDatabaseSection(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, `
database:
  blob:
    plugin: badger
    badger:
      block-cache-size: 1048576
      gc: false
  metadata:
    plugin: sqlite
    sqlite:
      data-dir: ""
`))
	require.NoError(t, err)
	assert.Equal(t, "badger", cfg.BlobPlugin)
	assert.Equal(t, "sqlite", cfg.MetadataPlugin)
}

func TestLoadConfigBadPluginOption(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, `
database:
  blob:
    badger:
      gc: "sometimes"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error processing plugin config")
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Setenv("NILE_DATA_DIR", "/srv/nile")
	t.Setenv("NILE_DATABASE_METADATA_PLUGIN", "postgres")
	cfg, err := LoadConfig(writeConfigFile(t, "dataDir: /var/lib/nile\n"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/nile", cfg.DataDir)
	assert.Equal(t, "postgres", cfg.MetadataPlugin)
	assert.Equal(t, DefaultBlobPlugin, cfg.BlobPlugin)
}

func TestLoadConfigTracing(t *testing.T) {
	t.Setenv("NILE_TRACING_STDOUT", "true")
	cfg, err := LoadConfig(writeConfigFile(t, "tracing: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Tracing)
	assert.True(t, cfg.TracingStdout)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, "dataDir: [unterminated\n"))
	require.Error(t, err)
}

func TestCheckPluginList(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.CheckPluginList())
	cfg.MetadataPlugin = "list"
	require.ErrorIs(t, cfg.CheckPluginList(), ErrPluginListRequested)
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	cfg := defaultConfig()
	ctx := WithContext(context.Background(), cfg)
	assert.Same(t, cfg, FromContext(ctx))
}
