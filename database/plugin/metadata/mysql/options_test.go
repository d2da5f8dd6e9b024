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
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	m, err := NewWithOptions()
	require.NoError(t, err)
	assert.Equal(t, "localhost", m.host)
	assert.Equal(t, uint(3306), m.port)
	assert.Equal(t, "root", m.user)
	assert.Equal(t, "nile", m.database)
	assert.Equal(t, "UTC", m.timeZone)
	require.NoError(t, m.Close())
}

func TestBuildDSN(t *testing.T) {
	m, err := NewWithOptions(
		WithHost("db.local"),
		WithPort(3307),
		WithUser("nile"),
		WithPassword("pw"),
		WithDatabase("registry"),
	)
	require.NoError(t, err)
	dsn, dbName := m.buildDSN()
	assert.Equal(t, "registry", dbName)
	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "nile", cfg.User)
	assert.Equal(t, "pw", cfg.Passwd)
	assert.Equal(t, "db.local:3307", cfg.Addr)
	assert.Equal(t, "registry", cfg.DBName)
	assert.True(t, cfg.ParseTime)
}

func TestBuildDSNOverride(t *testing.T) {
	m, err := NewWithOptions(
		WithDSN("user:pass@tcp(other:3306)/custom?parseTime=true"),
		WithDatabase("ignored"),
	)
	require.NoError(t, err)
	dsn, dbName := m.buildDSN()
	assert.Equal(t, "user:pass@tcp(other:3306)/custom?parseTime=true", dsn)
	assert.Equal(t, "custom", dbName)
}
