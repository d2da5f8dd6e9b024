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

package postgres

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()
	m, err := NewWithOptions(
		WithHost("db.local"),
		WithPort(6543),
		WithUser("nile"),
		WithPassword("secret"),
		WithDatabase("registry"),
		WithSSLMode("require"),
		WithTimeZone("UTC"),
		WithLogger(logger),
		WithPromRegistry(registry),
	)
	require.NoError(t, err)
	assert.Equal(t, "db.local", m.host)
	assert.Equal(t, uint(6543), m.port)
	assert.Equal(t, "nile", m.user)
	assert.Equal(t, "secret", m.password)
	assert.Equal(t, "registry", m.database)
	assert.Equal(t, "require", m.sslMode)
	assert.Equal(t, "UTC", m.timeZone)
	assert.Equal(t, logger, m.logger)
	assert.Equal(t, registry, m.promRegistry)
}

func TestDefaults(t *testing.T) {
	m, err := NewWithOptions()
	require.NoError(t, err)
	assert.Equal(t, "localhost", m.host)
	assert.Equal(t, uint(5432), m.port)
	assert.Equal(t, "postgres", m.user)
	assert.Equal(t, "postgres", m.database)
	assert.Equal(t, "disable", m.sslMode)
	assert.NotNil(t, m.logger)
	// Close before Start is a no-op
	require.NoError(t, m.Close())
}

func TestBuildDSN(t *testing.T) {
	m, err := NewWithOptions(
		WithHost("db.local"),
		WithPassword("pw"),
		WithTimeZone("UTC"),
	)
	require.NoError(t, err)
	assert.Equal(
		t,
		"host=db.local user=postgres password=pw dbname=postgres port=5432 sslmode=disable TimeZone=UTC",
		m.buildDSN(),
	)

	m, err = NewWithOptions(WithDSN("  postgres://u@h/db  "), WithHost("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u@h/db", m.buildDSN())
}
