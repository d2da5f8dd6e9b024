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

package badger

import (
	"fmt"
	"strings"

	"github.com/blinklabs-io/nile/database/plugin"
)

// BadgerLogger adapts a plugin.Logger to the badger.Logger interface
type BadgerLogger struct {
	logger plugin.Logger
}

func NewBadgerLogger(logger plugin.Logger) *BadgerLogger {
	return &BadgerLogger{logger: logger}
}

// badger terminates its messages with a newline
func formatMsg(msg string, args ...any) string {
	return strings.TrimSuffix(fmt.Sprintf(msg, args...), "\n")
}

func (b *BadgerLogger) Infof(msg string, args ...any) {
	b.logger.Info(formatMsg(msg, args...), "component", "database")
}

func (b *BadgerLogger) Warningf(msg string, args ...any) {
	b.logger.Warn(formatMsg(msg, args...), "component", "database")
}

func (b *BadgerLogger) Debugf(msg string, args ...any) {
	b.logger.Debug(formatMsg(msg, args...), "component", "database")
}

func (b *BadgerLogger) Errorf(msg string, args ...any) {
	b.logger.Error(formatMsg(msg, args...), "component", "database")
}
