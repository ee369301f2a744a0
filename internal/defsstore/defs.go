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

// Package defsstore implements the $NAME=value macro definition store: a
// line recognizer, a lookup by name, and an in-place $NAME / ${NAME}
// substitution pass over a configuration line.
package defsstore

import (
	"fmt"
	"strings"

	"github.com/kwconf/kwconf/logging"
)

// lineEnd is the internal sentinel joining the physical lines of a
// multiline definition's value.
const lineEnd = '\n'

// Definition is a named macro, single- or multi-line.
type Definition struct {
	Name      string
	Value     string
	Multiline bool
}

// Store holds the macro definitions seen during one top-level file load.
// A fresh Store is created by each top-level Load and discarded at the end
// of that load: definitions never persist across top-level load
// invocations.
type Store struct {
	byName map[string]*Definition
}

// New returns an empty Store.
func New() *Store {
	return &Store{byName: make(map[string]*Definition)}
}

var identStart = func(r rune) bool { return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '_' }
var identCont = func(r rune) bool { return identStart(r) || (r >= '0' && r <= '9') }

// CheckDefinition recognizes a "$NAME=VALUE" line. NAME must match
// [A-Za-z_][A-Za-z0-9_]* and the first '=' terminates it. On success the
// definition is inserted or replaces any earlier definition of the same
// name, and the Definition is returned. ok is false if line is not a
// definition.
//
// If VALUE ends in a trailing backslash, the definition is multiline: the
// trailing backslash is replaced by the internal line-end sentinel, and the
// caller (the preprocessor) is expected to append further physical lines
// via AppendContinuation until one doesn't end in backslash.
//
// Trailing blanks are trimmed from the raw value before the Definition is
// built: the trimmed bytes are computed first and only then used to
// construct the Definition, so a multiline value's line-end marker is never
// appended to an unset field.
func (s *Store) CheckDefinition(line string) (*Definition, bool) {
	if len(line) == 0 || line[0] != '$' {
		return nil, false
	}
	rest := line[1:]
	firstRune := []rune(rest)
	if len(firstRune) == 0 || !identStart(firstRune[0]) {
		return nil, false
	}

	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return nil, false
	}
	name := rest[:eq]
	for _, r := range name[1:] {
		if !identCont(r) {
			return nil, false
		}
	}

	raw := rest[eq+1:]
	value, multiline := trimAndMarkContinuation(raw)

	def := &Definition{Name: name, Value: value, Multiline: multiline}
	s.byName[name] = def
	return def, true
}

// trimAndMarkContinuation trims trailing blanks from raw and, if it then
// ends in a trailing backslash, replaces that backslash (and the blanks
// before it) with the internal line-end sentinel and reports
// multiline=true. Leading blanks are kept.
func trimAndMarkContinuation(raw string) (value string, multiline bool) {
	raw = strings.TrimRight(raw, " \t")
	if len(raw) == 0 || raw[len(raw)-1] != '\\' {
		return raw, false
	}
	body := strings.TrimRight(raw[:len(raw)-1], " \t")
	return body + string(lineEnd), true
}

// AppendContinuation appends another physical line to a multiline
// definition that is still open. trimmed should already have had leading
// and trailing blanks stripped by the caller. If trimmed still ends in a
// backslash, the definition remains open (more=true); otherwise it is
// closed (more=false) and def.Multiline's continuation is complete.
func (s *Store) AppendContinuation(def *Definition, trimmed string) (more bool) {
	if len(trimmed) > 0 && trimmed[len(trimmed)-1] == '\\' {
		def.Value += strings.TrimRight(trimmed[:len(trimmed)-1], " \t") + string(lineEnd)
		return true
	}
	def.Value += trimmed
	return false
}

// Find looks up a definition referenced at the start of ref (the bytes
// immediately following the '$' in a $NAME or ${NAME} reference).
// isDefinition selects the "$NAME=" recognition grammar (any terminator)
// versus the "$NAME elsewhere" reference grammar, where an unbraced name
// must be followed by whitespace or end of string and a braced name must
// be followed by '}'. Multiline definitions are only matched for the
// "$NAME=" grammar or when the reference is the entire remainder of ref.
func (s *Store) Find(ref string, isDefinition bool) (def *Definition, consumed int, braced bool, ok bool) {
	name := ref
	braced = !isDefinition && strings.HasPrefix(ref, "{")
	if braced {
		name = ref[1:]
	}

	runes := []rune(name)
	if len(runes) == 0 || !identStart(runes[0]) {
		return nil, 0, false, false
	}
	nlen := 1
	for nlen < len(runes) && identCont(runes[nlen]) {
		nlen++
	}
	ident := string(runes[:nlen])

	if braced {
		if nlen >= len(runes) || runes[nlen] != '}' {
			return nil, 0, false, false
		}
	} else if !isDefinition {
		if nlen < len(runes) && runes[nlen] != ' ' && runes[nlen] != '\t' {
			return nil, 0, false, false
		}
	}

	allowMultiline := isDefinition ||
		(!braced && nlen == len(runes)) ||
		(braced && nlen+1 == len(runes))

	d, found := s.byName[ident]
	if !found || (d.Multiline && !allowMultiline) {
		return nil, 0, false, false
	}

	consumed = nlen
	if braced {
		consumed += 2 // leading '{' and trailing '}'
	}
	return d, consumed, braced, true
}

// ReplaceParams scans line for $-references and substitutes each with its
// Definition's value. inMultiline indicates the line being scanned is
// itself a continuation of another multiline expansion (nesting is
// unsupported: such a reference is logged and left literal). If a
// multiline definition is referenced, only its first internal line is
// spliced into the result; the remaining internal lines are returned as
// continuation so the caller can emit them as subsequent logical lines.
// Returns an error if the expansion would exceed maxLen.
func (s *Store) ReplaceParams(line string, maxLen int, inMultiline bool, log logging.Logger) (expanded string, continuation string, err error) {
	var b strings.Builder
	i := 0
	for i < len(line) {
		if line[i] != '$' || i+1 >= len(line) {
			b.WriteByte(line[i])
			i++
			continue
		}

		def, consumed, _, ok := s.Find(line[i+1:], false)
		if !ok {
			b.WriteByte(line[i])
			i++
			continue
		}

		if def.Multiline && inMultiline {
			log.Warnf("Nested expansion of multiline definition %q within multiline definitions not supported", def.Name)
			b.WriteString(line[i : i+1+consumed])
			i += 1 + consumed
			continue
		}

		value := def.Value
		if def.Multiline {
			if idx := strings.IndexByte(value, lineEnd); idx >= 0 {
				if continuation == "" {
					continuation = value[idx+1:]
				}
				value = value[:idx]
			}
		}
		b.WriteString(value)
		i += 1 + consumed
	}

	expanded = b.String()
	if len(expanded) > maxLen {
		return "", "", fmt.Errorf("parameter substitution on line %q would exceed maximum line length", line)
	}
	return expanded, continuation, nil
}
