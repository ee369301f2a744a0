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

// Package preprocess implements a layered line source: it wraps a raw file
// reader and yields one logical configuration line at a time, with macro
// substitution, @id filtering, multi-line definition absorption, and
// include dispatch already applied.
package preprocess

import (
	"bufio"
	"io"
	"strings"

	"github.com/kwconf/kwconf/internal/defsstore"
	"github.com/kwconf/kwconf/internal/token"
	"github.com/kwconf/kwconf/logging"
)

// Options configures a LineSource.
type Options struct {
	// ConfigID is the host-configured system identifier used by the
	// "@id"/"@^id" line filter. HasConfigID distinguishes "no identifier
	// configured" from an (unlikely) empty-string identifier.
	ConfigID    string
	HasConfigID bool

	// MaxLen bounds the length of a line after macro substitution.
	MaxLen int

	// Include is invoked when a logical line is exactly "include <path>".
	// It is expected to recursively drive the file loader over path,
	// sharing this LineSource's Store and ConfigID so macro definitions
	// and filtering carry across the included file.
	Include func(pattern string) error
}

// LineSource yields successive logical lines from r.
type LineSource struct {
	scanner *bufio.Scanner
	store   *defsstore.Store
	opts    Options
	log     logging.Logger

	// pending holds logical lines already produced by expanding a
	// multiline definition reference, still to be returned before the
	// next physical read.
	pending []string
}

// New wraps r. store is shared across every LineSource opened during one
// top-level Load (macro definitions and, by extension, multiline
// definitions referenced via include do not reset per included file).
func New(r io.Reader, store *defsstore.Store, opts Options, log logging.Logger) *LineSource {
	if opts.MaxLen <= 0 {
		opts.MaxLen = 4096
	}
	return &LineSource{
		scanner: bufio.NewScanner(r),
		store:   store,
		opts:    opts,
		log:     log,
	}
}

// ReadLine returns the next logical line, or ok=false at end of input.
func (ls *LineSource) ReadLine() (line string, ok bool) {
	for {
		raw, fromPending, more := ls.nextRaw()
		if !more {
			return "", false
		}

		if strings.TrimSpace(raw) == "" {
			continue
		}

		text, suppressed := ls.recheck(strings.TrimLeft(raw, " \t"), fromPending)
		if suppressed {
			continue
		}

		if path, isInclude := matchInclude(text, ls.log); isInclude {
			if ls.opts.Include != nil {
				if err := ls.opts.Include(path); err != nil {
					ls.log.Warnf("include %q failed: %v", path, err)
				}
			}
			continue
		}

		return text, true
	}
}

// nextRaw returns the next raw (CR/LF-stripped) line, either drained from
// the pending queue or read from the underlying scanner.
func (ls *LineSource) nextRaw() (line string, fromPending bool, ok bool) {
	if len(ls.pending) > 0 {
		line = ls.pending[0]
		ls.pending = ls.pending[1:]
		return line, true, true
	}
	if !ls.scanner.Scan() {
		return "", false, false
	}
	return ls.scanner.Text(), false, true
}

// recheck runs the "@id filter / definition / macro expansion" loop,
// re-entering it whenever expansion reveals a new leading '@'. inMultiline
// marks text as itself a continuation of an already-expanded multiline
// reference, disallowing nested expansion.
func (ls *LineSource) recheck(text string, inMultiline bool) (result string, suppressed bool) {
	for {
		text = strings.TrimLeft(text, " \t")
		if text == "" {
			return "", true
		}

		if text[0] == '@' {
			next, keep := ls.applyIDFilter(text)
			if !keep {
				return "", true
			}
			text = next
			continue
		}

		if text[0] == '$' {
			if def, isDef := ls.store.CheckDefinition(text); isDef {
				if def.Multiline {
					ls.accumulateMultiline(def)
				}
				return "", true
			}
		}

		if strings.ContainsRune(text, '$') {
			expanded, continuation, err := ls.store.ReplaceParams(text, ls.opts.MaxLen, inMultiline, ls.log)
			if err != nil {
				ls.log.Warnf("%v", err)
				return "", true
			}
			if continuation != "" {
				ls.pending = append(splitSentinel(continuation), ls.pending...)
			}
			if expanded != text {
				text = expanded
				if strings.HasPrefix(strings.TrimLeft(text, " \t"), "@") {
					continue
				}
			}
		}

		return text, false
	}
}

// applyIDFilter recognizes the "@[^]id " prefix. It reports the line with
// the prefix stripped and keep=true when the line should be kept (the
// configured ConfigID matches id, taking inversion into account), or
// keep=false when the line should be suppressed entirely.
func (ls *LineSource) applyIDFilter(text string) (result string, keep bool) {
	rest := text[1:]
	invert := false
	if strings.HasPrefix(rest, "^") {
		invert = true
		rest = rest[1:]
	}

	sep := strings.IndexAny(rest, " \t")
	if sep < 0 {
		// Nothing follows the system id: the line can't be parsed further.
		return "", false
	}
	id := rest[:sep]

	matches := ls.opts.HasConfigID && id == ls.opts.ConfigID
	if matches == invert {
		return "", false
	}
	return strings.TrimLeft(rest[sep:], " \t"), true
}

// accumulateMultiline consumes subsequent physical lines from the
// underlying scanner (not the pending queue: a multiline definition being
// defined can't itself be interleaved with queued continuations) until one
// doesn't end in a trailing backslash, building def's value via the store.
func (ls *LineSource) accumulateMultiline(def *defsstore.Definition) {
	for ls.scanner.Scan() {
		trimmed := strings.Trim(ls.scanner.Text(), " \t")
		if !ls.store.AppendContinuation(def, trimmed) {
			return
		}
	}
}

// splitSentinel splits a multiline definition's internal-line-end
// (sentinel '\n') separated remainder into the individual logical lines
// the preprocessor will emit one at a time.
func splitSentinel(continuation string) []string {
	return strings.Split(continuation, "\n")
}

// matchInclude tokenizes text and, if it is exactly "include <path>",
// returns the path.
func matchInclude(text string, log logging.Logger) (path string, ok bool) {
	tokens := token.Tokenize(text, log)
	if len(tokens) == 2 && tokens[0] == "include" {
		return tokens[1], true
	}
	return "", false
}
