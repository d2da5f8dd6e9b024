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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/blinklabs-io/nile/database/types"
	"github.com/blinklabs-io/nile/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type cliEnv struct {
	t          *testing.T
	dataDir    string
	configFile string
}

func newCliEnv(t *testing.T) *cliEnv {
	t.Helper()
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "nile.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("{}\n"), 0o600))
	return &cliEnv{
		t:          t,
		dataDir:    filepath.Join(tmpDir, "data"),
		configFile: configFile,
	}
}

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	rootCmd, err := newRootCommand()
	require.NoError(e.t, err)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(
		[]string{"--config", e.configFile, "--data-dir", e.dataDir},
		args...,
	))
	err = rootCmd.Execute()
	return out.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "nile %v", args)
	return out
}

func TestCliScenario(t *testing.T) {
	env := newCliEnv(t)
	admin := types.Identity{0xad}.String()
	agents := []string{
		types.Identity{0x01}.String(),
		types.Identity{0x02}.String(),
		types.Identity{0x03}.String(),
		types.Identity{0x04}.String(),
	}
	program := types.Identity{0x50}.String()

	var authority authorityView
	require.NoError(t, yaml.Unmarshal([]byte(env.mustRun("bootstrap", "--caller", admin)), &authority))
	assert.Equal(t, admin, authority.Admin)

	_, err := env.run("bootstrap", "--caller", admin)
	require.ErrorIs(t, err, registry.ErrAlreadyInitialized)

	for _, agent := range agents {
		env.mustRun("agent", "authorize", agent, "--caller", admin)
	}
	_, err = env.run("agent", "authorize", admin, "--caller", agents[0])
	require.ErrorIs(t, err, registry.ErrNotAdmin)

	env.mustRun("program", "register", program, "example", "--caller", agents[0])
	var prog programView
	require.NoError(t, yaml.Unmarshal([]byte(env.mustRun(
		"program", "score", program,
		"--name", "80", "--image", "90", "--likeness", "70", "--essence", "60",
		"--caller", agents[0],
	)), &prog))
	assert.Equal(t, uint8(75), prog.TotalScore)
	assert.Equal(t, "B", prog.Grade)

	var report reportView
	require.NoError(t, yaml.Unmarshal([]byte(env.mustRun(
		"report", "submit", program,
		"--event-type", "exploit", "--headline", "drained", "--impact", "-90",
		"--caller", agents[0],
	)), &report))
	assert.Equal(t, uint8(3), report.RequiredQuorum)
	assert.Equal(t, "open", report.Status)

	env.mustRun("report", "vote", report.Report, "--caller", agents[1])
	_, err = env.run("report", "vote", report.Report, "--caller", agents[1])
	require.ErrorIs(t, err, registry.ErrAlreadyVoted)
	env.mustRun("report", "vote", report.Report, "--caller", agents[2])

	require.NoError(t, yaml.Unmarshal([]byte(env.mustRun("report", "show", report.Report)), &report))
	assert.Equal(t, "accepted", report.Status)
	assert.Len(t, report.Votes, 2)

	var reports []reportView
	require.NoError(t, yaml.Unmarshal([]byte(env.mustRun("report", "list", program)), &reports))
	require.Len(t, reports, 1)

	var stats struct {
		Authority authorityView `yaml:"authority"`
		TopAgents []agentView   `yaml:"topAgents"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(env.mustRun("stats", "--top", "1")), &stats))
	assert.Equal(t, uint32(4), stats.Authority.AgentCount)
	assert.Equal(t, uint64(1), stats.Authority.TotalReports)
	require.Len(t, stats.TopAgents, 1)
	assert.Equal(t, agents[0], stats.TopAgents[0].Agent)
	assert.Equal(t, uint64(15), stats.TopAgents[0].Points)
}

func TestCliCallerRequired(t *testing.T) {
	env := newCliEnv(t)
	_, err := env.run("bootstrap")
	require.Error(t, err)
	_, err = env.run("bootstrap", "--caller", "not-base58!")
	require.Error(t, err)
}

func TestCliMetricsFile(t *testing.T) {
	env := newCliEnv(t)
	metricsFile := filepath.Join(t.TempDir(), "nile.prom")
	t.Setenv("NILE_METRICS_FILE", metricsFile)
	env.mustRun("bootstrap", "--caller", types.Identity{0xad}.String())
	_, err := env.run("agent", "show", types.Identity{0x01}.String())
	require.ErrorIs(t, err, registry.ErrUnauthorizedAgent)
	buf, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(buf), "nile_registry_agents_authorized_total 0")
}

func TestCliEventLog(t *testing.T) {
	env := newCliEnv(t)
	eventLogFile := filepath.Join(t.TempDir(), "events.yaml")
	t.Setenv("NILE_EVENT_LOG_FILE", eventLogFile)
	admin := types.Identity{0xad}.String()
	env.mustRun("bootstrap", "--caller", admin)
	env.mustRun("agent", "authorize", types.Identity{0x01}.String(), "--caller", admin)
	env.mustRun("agent", "authorize", types.Identity{0x02}.String(), "--caller", admin)
	// Refused operations are not logged
	_, err := env.run("agent", "authorize", types.Identity{0x02}.String(), "--caller", admin)
	require.ErrorIs(t, err, registry.ErrAgentExists)

	f, err := os.Open(eventLogFile)
	require.NoError(t, err)
	defer f.Close()
	dec := yaml.NewDecoder(f)
	var records []eventRecord
	for {
		var record eventRecord
		if err := dec.Decode(&record); err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
		records = append(records, record)
	}
	require.Len(t, records, 2)
	for i, record := range records {
		assert.Equal(t, string(registry.AgentAuthorizedEventType), record.Type)
		data, ok := record.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, i+1, data["agentcount"])
	}
}

func TestCliVersionAndList(t *testing.T) {
	env := newCliEnv(t)
	assert.Contains(t, env.mustRun("version"), programName)
	out := env.mustRun("list")
	assert.Contains(t, out, "badger")
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "postgres")
	assert.Contains(t, out, "mysql")
	assert.Contains(t, out, "s3")
	assert.Contains(t, out, "gcs")
}
