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

package engine

import (
	"github.com/kwconf/kwconf/internal/defsstore"
	"github.com/kwconf/kwconf/internal/preprocess"
	"github.com/kwconf/kwconf/logging"
)

// NullStrvecHandler is invoked by the *At extractor helpers when a handler
// asks for a token past the end of the current line. The default
// implementation logs the offending keyword and position and returns a
// *kwerr.FatalConfigError.
type NullStrvecHandler func(ctx *ParseContext, tokens []string, index int) error

// ParseContext is shared by every component during one Load call: the
// macro store, the configured system identifier, line-length limit, and
// the host collaborators (logging, the fatal-token hook). Unlike the
// process-wide globals it is modeled on, a ParseContext is created fresh
// per Load and threaded explicitly through recursion instead of mutated
// from package-level state.
type ParseContext struct {
	Log   logging.Logger
	Store *defsstore.Store

	ConfigID    string
	HasConfigID bool
	MaxLen      int

	NullStrvecHandler NullStrvecHandler

	skipRequested bool

	// ls is the line source the stream processor currently executing a
	// handler is reading from. It is saved and restored around every
	// processStream call (so it is always correct across both recursion
	// into a sub-level and recursion into an included file), and lets
	// ReadValueBlock consume further lines on a handler's behalf.
	ls *preprocess.LineSource
}

// SkipBlock is the public hook a handler calls to abandon the remainder of
// the block it is about to open, equivalent to the keyword being
// registered inactive for this one invocation.
func (ctx *ParseContext) SkipBlock() {
	ctx.skipRequested = true
}

// consumeSkipRequest reports whether SkipBlock was called since the last
// check, clearing the flag.
func (ctx *ParseContext) consumeSkipRequest() bool {
	requested := ctx.skipRequested
	ctx.skipRequested = false
	return requested
}
