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
	"testing"

	"github.com/kwconf/kwconf/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(*ParseContext, []string) error { return nil }

func TestBuilderNestedSublevels(t *testing.T) {
	b := NewBuilder()
	vs := b.InstallRoot("virtual_server", noopHandler, true)
	b.Sublevel()
	b.Install("delay_loop", noopHandler)
	rs := b.Install("real_server", noopHandler)
	b.Sublevel()
	b.Install("weight", noopHandler)
	b.SublevelEnd()
	b.SublevelEnd()
	tree := b.Build()

	require.Len(t, tree.Roots, 1)
	assert.Same(t, vs, tree.Roots[0])
	require.Len(t, vs.Sub, 2)
	assert.Equal(t, "delay_loop", vs.Sub[0].Name)
	assert.Same(t, rs, vs.Sub[1])
	require.Len(t, rs.Sub, 1)
	assert.Equal(t, "weight", rs.Sub[0].Name)
}

func TestBuilderInactiveRootSwallowsChildren(t *testing.T) {
	b := NewBuilder()
	b.InstallRoot("inactive_block", nil, false)
	b.Sublevel()
	n := b.Install("inner_keyword", noopHandler)
	b.SublevelEnd()
	tree := b.Build()

	assert.Nil(t, n)
	assert.Empty(t, tree.Roots[0].Sub)
	assert.False(t, tree.Roots[0].Active)
}

func TestBuilderCloseHandlers(t *testing.T) {
	b := NewBuilder()
	var rootClosed, subClosed bool
	b.InstallRoot("virtual_server", noopHandler, true)
	b.InstallRootEndHandler(func(*ParseContext) { rootClosed = true })
	b.Sublevel()
	b.Install("real_server", noopHandler)
	b.InstallSublevelEndHandler(func(*ParseContext) { subClosed = true })
	b.SublevelEnd()
	tree := b.Build()

	tree.Roots[0].CloseHandler(nil)
	tree.Roots[0].Sub[0].CloseHandler(nil)
	assert.True(t, rootClosed)
	assert.True(t, subClosed)
}

func TestValidateSiblingsLogsDuplicateNames(t *testing.T) {
	b := NewBuilder()
	b.InstallRoot("real_server", noopHandler, true)
	b.InstallRoot("real_server", noopHandler, true)
	tree := b.Build()

	log := logging.NewRecorder()
	validateSiblings(tree.Roots, log)
	require.Len(t, log.Warns, 1)
	assert.Contains(t, log.Warns[0], "real_server")
}
