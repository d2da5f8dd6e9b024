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


// Package testutil holds channel helpers shared by the event and registry
// tests
package testutil

import (
	"testing"
	"time"
)

// DefaultTimeout bounds how long a test waits for an asynchronous delivery
const DefaultTimeout = time.Second

// RequireReceive returns the next value from ch, failing the test if the
// channel is closed or nothing arrives before the timeout
func RequireReceive[T any](
	t testing.TB,
	ch <-chan T,
	timeout time.Duration,
	msg string,
) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed while waiting: %s", msg)
		}
		return v
	case <-time.After(timeout):
		t.Fatalf("timeout waiting for channel receive: %s", msg)
	}
	var zero T
	return zero
}

// RequireNoReceive fails the test if anything is already waiting on ch or
// arrives within d. A zero d only checks what is already buffered.
func RequireNoReceive[T any](
	t testing.TB,
	ch <-chan T,
	d time.Duration,
	msg string,
) {
	t.Helper()
	if d <= 0 {
		select {
		case v := <-ch:
			t.Fatalf("unexpected value received on channel: %v: %s", v, msg)
		default:
		}
		return
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected value received on channel: %v: %s", v, msg)
	case <-time.After(d):
	}
}
