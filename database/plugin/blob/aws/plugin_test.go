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

package aws

import (
	"testing"

	"github.com/blinklabs-io/nile/database/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		location string
		bucket   string
		prefix   string
		wantErr  bool
	}{
		{location: "s3://votes", bucket: "votes"},
		{location: "s3://votes/nile", bucket: "votes", prefix: "nile/"},
		{location: "s3://votes/nile/prod/", bucket: "votes", prefix: "nile/prod/"},
		{location: "s3://", wantErr: true},
		{location: "gcs://votes", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.location, func(t *testing.T) {
			db, err := New(tc.location, nil, nil)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.bucket, db.Bucket())
			assert.Equal(t, tc.prefix, db.prefix)
		})
	}
}

func TestStartRequiresBucket(t *testing.T) {
	db, err := NewWithOptions()
	require.NoError(t, err)
	require.Error(t, db.Start())
	// Closing a store that never started is a no-op
	require.NoError(t, db.Close())
}

func TestNewFromCmdlineOptions(t *testing.T) {
	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeBlob, "s3", "bucket", "test-bucket"))
	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeBlob, "s3", "prefix", "/test-prefix/"))
	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeBlob, "s3", "endpoint", "http://localhost:9000"))
	t.Cleanup(func() {
		for _, name := range []string{"bucket", "prefix", "endpoint"} {
			_ = plugin.SetPluginOption(plugin.PluginTypeBlob, "s3", name, "")
		}
	})

	p := NewFromCmdlineOptions(plugin.Env{})
	db, ok := p.(*BlobStoreS3)
	require.True(t, ok, "expected *BlobStoreS3, got %T", p)
	assert.Equal(t, "test-bucket", db.Bucket())
	assert.Equal(t, "test-prefix/", db.prefix)
	assert.Equal(t, "http://localhost:9000", db.endpoint)
	assert.Nil(t, db.Client())
}
