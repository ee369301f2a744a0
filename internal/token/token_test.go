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

package token

import (
	"testing"

	"github.com/kwconf/kwconf/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBlankAndComment(t *testing.T) {
	log := logging.NewRecorder()
	assert.Nil(t, Tokenize("", log))
	assert.Nil(t, Tokenize("   \t  ", log))
	assert.Nil(t, Tokenize("# a comment", log))
	assert.Nil(t, Tokenize("! a comment", log))
	assert.Nil(t, Tokenize("   # another", log))
}

func TestTokenizeQuoteGrouping(t *testing.T) {
	log := logging.NewRecorder()
	got := Tokenize(`a "b c" d`, log)
	assert.Equal(t, []string{"a", "b c", "d"}, got)
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	log := logging.NewRecorder()
	got := Tokenize(`foo "bar baz`, log)
	assert.Equal(t, []string{"foo"}, got)
	require.Len(t, log.Warns, 1)
	assert.Contains(t, log.Warns[0], "Unmatched quote")
}

func TestTokenizeCommentNeutrality(t *testing.T) {
	log := logging.NewRecorder()
	line := `foo "bar baz" qux`
	base := Tokenize(line, log)
	withComment := Tokenize(line+" # anything", log)
	assert.Equal(t, base, withComment)

	withBang := Tokenize(line+" ! anything else", log)
	assert.Equal(t, base, withBang)
}

func TestTokenizeIdempotence(t *testing.T) {
	log := logging.NewRecorder()
	cases := []string{
		`foo bar baz`,
		`virtual_server 10.0.0.1 80 {`,
		`foo "bar baz" qux`,
		`"only one token"`,
	}
	for _, line := range cases {
		first := Tokenize(line, log)
		serialized := Join(first)
		second := Tokenize(serialized, log)
		assert.Equal(t, first, second, "round-trip of %q via %q", line, serialized)
	}
}

func TestTokenizeQuoteTerminatesBareToken(t *testing.T) {
	log := logging.NewRecorder()
	// A '"' inside what looked like a bare token ends that token and opens
	// a new quoted token.
	got := Tokenize(`foo"bar baz"`, log)
	assert.Equal(t, []string{"foo", "bar baz"}, got)
}
