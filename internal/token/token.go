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

// Package token implements the character-level scanner that turns one
// logical configuration line into an ordered token sequence: bare words,
// double-quoted strings (which contribute a single token each), and the
// "!"/"#" end-of-line comment markers.
package token

import (
	"strings"

	"github.com/kwconf/kwconf/logging"
)

// Tokenize splits one logical line (already free of trailing CR/LF) into
// its token sequence. A blank line or a line whose first non-whitespace
// character is '!' or '#' yields nil. An unterminated quoted string logs a
// warning and returns the tokens collected before the opening quote.
func Tokenize(line string, log logging.Logger) []string {
	i, n := 0, len(line)
	skipSpace := func() {
		for i < n && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
	}

	skipSpace()
	if i >= n || line[i] == '!' || line[i] == '#' {
		return nil
	}

	var tokens []string
	for i < n {
		var tok string
		if line[i] == '"' {
			i++
			end := strings.IndexByte(line[i:], '"')
			if end < 0 {
				log.Warnf("Unmatched quote: '%s'", line)
				return tokens
			}
			tok = line[i : i+end]
			i += end + 1
		} else {
			start := i
			for i < n && !isSpecial(line[i]) {
				i++
			}
			tok = line[start:i]
		}
		tokens = append(tokens, tok)

		skipSpace()
		if i >= n || line[i] == '!' || line[i] == '#' {
			break
		}
	}
	return tokens
}

// isSpecial reports whether c terminates an unquoted bare token: whitespace,
// the quote character, or the start of an end-of-line comment.
func isSpecial(c byte) bool {
	switch c {
	case ' ', '\t', '"', '!', '#':
		return true
	default:
		return false
	}
}

// Join serializes a token sequence back into one line, quoting any token
// that itself contains whitespace or one of the special characters so that
// re-tokenizing it reproduces the same sequence.
func Join(tokens []string) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		if needsQuoting(tok) {
			parts[i] = `"` + tok + `"`
		} else {
			parts[i] = tok
		}
	}
	return strings.Join(parts, " ")
}

func needsQuoting(tok string) bool {
	if tok == "" {
		return true
	}
	for i := 0; i < len(tok); i++ {
		if isSpecial(tok[i]) {
			return true
		}
	}
	return false
}
