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

// Package kwconf is the public entry point for the hierarchical,
// keyword-driven configuration parser: build a keyword grammar with a
// Builder, then Load one or more files against it. The parsing core lives
// in internal/engine; this package re-exports the types a caller needs and
// adds nothing of its own.
package kwconf

import (
	"time"

	"github.com/kwconf/kwconf/internal/engine"
	"github.com/kwconf/kwconf/logging"
)

// TimerHZ is the number of internal ticks per second a TimerAt duration is
// expressed in.
const TimerHZ = engine.TimerHZ

// DefaultMaxLen is the maximum byte length of a line after macro
// substitution, used when Options.MaxLen is left at zero.
const DefaultMaxLen = engine.DefaultMaxLen

type (
	// HandlerFunc is invoked with the tokens of a matched configuration
	// line: the keyword itself plus its arguments. For a keyword with
	// sub-keywords a trailing block-opening "{" is already stripped.
	HandlerFunc = engine.HandlerFunc

	// CloseHandlerFunc is invoked once a matched keyword's sub-block has
	// been fully consumed.
	CloseHandlerFunc = engine.CloseHandlerFunc

	// Node is one entry of a registered keyword tree.
	Node = engine.Node

	// Tree is an immutable, fully registered keyword tree.
	Tree = engine.Tree

	// Builder assembles a Tree through the classic install_keyword_root /
	// install_keyword / install_sublevel registration protocol.
	Builder = engine.Builder

	// ParseContext is handed to every HandlerFunc and carries the
	// collaborators (logging, the macro store) a handler may need via the
	// extractor helpers.
	ParseContext = engine.ParseContext

	// NullStrvecHandler is invoked when a handler asks for a token past
	// the end of the current line.
	NullStrvecHandler = engine.NullStrvecHandler

	// Options configures a Load call.
	Options = engine.Options
)

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return engine.NewBuilder()
}

// Load parses pattern (and anything it includes) against tree.
func Load(tree *Tree, pattern string, opts Options) error {
	return engine.Load(tree, pattern, opts)
}

// StringAt returns the token at position n, or invokes ctx's
// NullStrvecHandler if n is past the end of tokens.
func StringAt(ctx *ParseContext, tokens []string, n int) (string, error) {
	return engine.StringAt(ctx, tokens, n)
}

// UintAt parses the token at position n as an unsigned integer.
func UintAt(ctx *ParseContext, tokens []string, n int) (uint64, error) {
	return engine.UintAt(ctx, tokens, n)
}

// TimerAt parses the token at position n as a count of seconds, scaled to
// TimerHZ ticks per second and returned as a time.Duration.
func TimerAt(ctx *ParseContext, tokens []string, n int) (time.Duration, error) {
	return engine.TimerAt(ctx, tokens, n)
}

// BoolAt parses the token at position n as a boolean: "true", "on", and
// "yes" are true; "false", "off", and "no" are false; anything else is an
// error.
func BoolAt(ctx *ParseContext, tokens []string, n int) (bool, error) {
	return engine.BoolAt(ctx, tokens, n)
}

// ReadValueBlock returns a flat token sequence for a keyword that takes
// either its value on the same line or spread across a "{ ... }" block.
func ReadValueBlock(ctx *ParseContext, tokens []string) ([]string, error) {
	return engine.ReadValueBlock(ctx, tokens)
}

// Logger is the host logging facility the parser core consumes.
type Logger = logging.Logger

// DefaultLogger returns a Logger backed by logrus' standard logger.
func DefaultLogger() Logger {
	return logging.Default()
}
