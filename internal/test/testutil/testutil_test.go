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


package testutil_test

import (
	"testing"

	"github.com/blinklabs-io/nile/internal/test/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 42
	assert.Equal(
		t,
		42,
		testutil.RequireReceive(t, ch, testutil.DefaultTimeout, "value"),
	)
}

func TestRequireNoReceive(t *testing.T) {
	ch := make(chan string, 1)
	testutil.RequireNoReceive(t, ch, 0, "buffered")
	testutil.RequireNoReceive(t, ch, 10_000_000, "delayed")
}
