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

// Package engine implements the registered keyword tree and the recursive
// stream processor that drives it: the tightly coupled core a host program
// assembles once at startup (via Builder) and then hands to Load.
package engine

import (
	"github.com/kwconf/kwconf/internal/collections"
	"github.com/kwconf/kwconf/logging"
)

// HandlerFunc is invoked with the tokens of a matched configuration line
// (the keyword itself plus any arguments; for a keyword with sub-keywords a
// trailing block-opening "{" is already stripped, for any other keyword it
// is kept). Returning a non-nil error aborts the load - use this only for
// the fatal "missing parameter" path surfaced by the extractor helpers;
// anything recoverable should be logged through ctx.Log instead. An error
// returned while an included file is parsed is passed up to the caller
// once the including file has been read to its end.
type HandlerFunc func(ctx *ParseContext, tokens []string) error

// CloseHandlerFunc is invoked once a matched keyword's sub-block has been
// fully consumed (its closing "}" seen).
type CloseHandlerFunc func(ctx *ParseContext)

// Node is one entry in the keyword tree.
type Node struct {
	Name         string
	Handler      HandlerFunc
	Active       bool
	Sub          []*Node
	CloseHandler CloseHandlerFunc
}

// Tree is an immutable, fully registered keyword tree ready to drive Load.
type Tree struct {
	Roots []*Node
}

// Builder assembles a Tree. It reproduces the registration protocol of a
// classic keyword installer: InstallRoot starts a new top-level entry,
// Install appends a child at the current depth under the most recently
// installed node at the parent depth, and Sublevel/SublevelEnd move that
// depth up and down. Registering under an inactive ancestor is silently a
// no-op, matching keyword_alloc_sub's behavior.
type Builder struct {
	tree  Tree
	path  []*Node
	depth int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// InstallRoot appends a new top-level keyword and resets the registration
// depth to 0, with this node as the anchor for subsequent Install calls.
func (b *Builder) InstallRoot(name string, handler HandlerFunc, active bool) *Node {
	n := &Node{Name: name, Active: active}
	if active {
		n.Handler = handler
	}
	b.tree.Roots = append(b.tree.Roots, n)
	b.path = []*Node{n}
	b.depth = 0
	return n
}

// Install appends a child keyword at the current depth, under the most
// recently installed node one depth above it. It returns nil (and does
// nothing) if that ancestor is inactive.
func (b *Builder) Install(name string, handler HandlerFunc) *Node {
	if b.depth < 1 || b.depth > len(b.path) {
		panic("engine: Install called at a depth with no enclosing keyword")
	}
	parent := b.path[b.depth-1]
	if !parent.Active {
		return nil
	}
	n := &Node{Name: name, Handler: handler, Active: true}
	parent.Sub = append(parent.Sub, n)

	b.path = append(b.path[:b.depth], n)
	return n
}

// Sublevel increments the registration depth, so that subsequent Install
// calls attach under the node most recently installed at the previous
// depth.
func (b *Builder) Sublevel() {
	b.depth++
}

// SublevelEnd decrements the registration depth.
func (b *Builder) SublevelEnd() {
	b.depth--
}

// InstallRootEndHandler attaches a close handler to the most recently
// installed top-level keyword.
func (b *Builder) InstallRootEndHandler(h CloseHandlerFunc) {
	if len(b.tree.Roots) == 0 {
		panic("engine: InstallRootEndHandler called before any InstallRoot")
	}
	last := b.tree.Roots[len(b.tree.Roots)-1]
	if !last.Active {
		return
	}
	last.CloseHandler = h
}

// InstallSublevelEndHandler attaches a close handler to the most recently
// installed keyword at the current depth.
func (b *Builder) InstallSublevelEndHandler(h CloseHandlerFunc) {
	if b.depth >= len(b.path) {
		panic("engine: InstallSublevelEndHandler called at a depth with no enclosing keyword")
	}
	node := b.path[b.depth]
	if !node.Active {
		return
	}
	node.CloseHandler = h
}

// Build finalizes registration and returns the immutable Tree.
func (b *Builder) Build() *Tree {
	return &b.tree
}

// validateSiblings logs a warning for every set of sibling nodes that share
// a name: the first match wins at parse time, and a repeated name is almost
// always a registration mistake.
func validateSiblings(roots []*Node, log logging.Logger) {
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		names := collections.MapSlice(nodes, func(n *Node) string { return n.Name })
		for _, dup := range collections.FindDuplicates(names) {
			log.Warnf("keyword %q registered more than once at the same level", dup)
		}
		for _, n := range nodes {
			if len(n.Sub) > 0 {
				walk(n.Sub)
			}
		}
	}
	walk(roots)
}
