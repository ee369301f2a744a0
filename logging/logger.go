// Copyright 2026 The kwconf Authors.
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

// Package logging defines the host logging facility the parser core
// consumes as a collaborator rather than a concrete dependency. The
// default implementation is backed by logrus.
package logging

import (
	"github.com/sirupsen/logrus"
)

// Logger is the minimal surface the parser core needs from a host logging
// facility: every recoverable condition in the grammar (unterminated
// quotes, missing '{', unknown keyword, macro overflow, skipped config
// files...) is reported through Warnf or Errorf and parsing continues.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// logrusLogger adapts a *logrus.Logger to the Logger interface.
type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps l, prefixing every message with the "component"
// field so multi-file loads can be told apart in aggregated log output.
func NewLogrusLogger(l *logrus.Logger, component string) Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &logrusLogger{entry: l.WithField("component", component)}
}

func (l *logrusLogger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

// Default returns a Logger backed by logrus' standard logger, tagged with
// the "kwconf" component.
func Default() Logger {
	return NewLogrusLogger(logrus.StandardLogger(), "kwconf")
}

// Nop is a Logger that discards every message. Useful in tests that only
// care about the parser's structural behavior, not its log output.
type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Nop returns a Logger that discards every message.
func Nop() Logger { return nopLogger{} }
