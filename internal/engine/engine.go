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
	"github.com/kwconf/kwconf/logging"
)

// DefaultMaxLen is the maximum byte length of a line after macro
// substitution, applied when Options.MaxLen is left at zero.
const DefaultMaxLen = 4096

// Options configures one Load call.
type Options struct {
	ConfigID          string
	HasConfigID       bool
	MaxLen            int
	Log               logging.Logger
	NullStrvecHandler NullStrvecHandler
}

// Load parses pattern (and anything it includes) against tree, owning a
// fresh ParseContext and macro Store for the duration of the call; neither
// is reused across Load calls, matching the rule that macro definitions do
// not persist across top-level loads.
func Load(tree *Tree, pattern string, opts Options) error {
	log := opts.Log
	if log == nil {
		log = logging.Default()
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	validateSiblings(tree.Roots, log)

	ctx := &ParseContext{
		Log:               log,
		Store:             defsstore.New(),
		ConfigID:          opts.ConfigID,
		HasConfigID:       opts.HasConfigID,
		MaxLen:            maxLen,
		NullStrvecHandler: opts.NullStrvecHandler,
	}

	return LoadConfigFile(ctx, tree, pattern)
}
