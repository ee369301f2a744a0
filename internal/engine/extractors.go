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
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/kwconf/kwconf/internal/token"
	"github.com/kwconf/kwconf/kwerr"
)

// TimerHZ is the number of internal ticks per second a TimerAt value is
// expressed in: one tick per microsecond.
const TimerHZ = 1_000_000

// StringAt returns the token at position n, or invokes ctx's
// NullStrvecHandler if n is past the end of tokens.
func StringAt(ctx *ParseContext, tokens []string, n int) (string, error) {
	if n < 0 || n >= len(tokens) {
		return "", ctx.nullStrvec(tokens, n)
	}
	return tokens[n], nil
}

// UintAt parses the token at position n as an unsigned integer.
func UintAt(ctx *ParseContext, tokens []string, n int) (uint64, error) {
	s, err := StringAt(ctx, tokens, n)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("word %d (%q): not an unsigned integer", n, s)
	}
	return v, nil
}

// TimerAt parses the token at position n as a count of seconds and scales
// it to TimerHZ ticks per second, returned as the idiomatic Go equivalent:
// a time.Duration (ticks interpreted as microseconds). A value too large
// for a time.Duration saturates at the largest one (math.MaxInt64
// nanoseconds).
func TimerAt(ctx *ParseContext, tokens []string, n int) (time.Duration, error) {
	seconds, err := UintAt(ctx, tokens, n)
	if err != nil {
		return 0, err
	}
	const maxSeconds = math.MaxInt64 / (TimerHZ * 1000) // TimerHZ ticks/s, then ticks -> ns is another *1000
	if seconds > maxSeconds {
		return time.Duration(math.MaxInt64), nil
	}
	return time.Duration(seconds*TimerHZ) * time.Microsecond, nil
}

// BoolAt parses the token at position n as a boolean: "true", "on", and
// "yes" are true; "false", "off", and "no" are false; anything else is an
// error.
func BoolAt(ctx *ParseContext, tokens []string, n int) (bool, error) {
	s, err := StringAt(ctx, tokens, n)
	if err != nil {
		return false, err
	}
	switch s {
	case "true", "on", "yes":
		return true, nil
	case "false", "off", "no":
		return false, nil
	default:
		return false, fmt.Errorf("word %d (%q): not a recognized boolean", n, s)
	}
}

// ReadValueBlock returns a flat token sequence for a keyword that takes
// either its value on the same line or spread across a "{ ... }" block.
// If tokens ends in "{", subsequent logical lines are read from the
// stream the calling handler was invoked from and concatenated until one
// whose first token is "}"; otherwise tokens itself (minus the keyword at
// index 0) is the value.
func ReadValueBlock(ctx *ParseContext, tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	if tokens[len(tokens)-1] != bob {
		return append([]string(nil), tokens[1:]...), nil
	}

	values := append([]string(nil), tokens[1:len(tokens)-1]...)
	for {
		line, ok := ctx.ls.ReadLine()
		if !ok {
			return values, fmt.Errorf("unexpected end of input inside value block")
		}
		lineTokens := token.Tokenize(line, ctx.Log)
		if len(lineTokens) == 0 {
			continue
		}
		if lineTokens[0] == eob {
			return values, nil
		}
		values = append(values, lineTokens...)
	}
}

// nullStrvec invokes ctx's NullStrvecHandler, or the default behavior
// (defaultNullStrvecHandler) when the ParseContext was not given one.
func (ctx *ParseContext) nullStrvec(tokens []string, index int) error {
	if ctx.NullStrvecHandler != nil {
		return ctx.NullStrvecHandler(ctx, tokens, index)
	}
	return defaultNullStrvecHandler(ctx, tokens, index)
}

func defaultNullStrvecHandler(ctx *ParseContext, tokens []string, index int) error {
	line := "***MISSING***"
	if len(tokens) > 0 {
		line = tokens[0]
	}
	err := &kwerr.FatalConfigError{Line: line, Position: index + 1}
	if index > 0 && index-1 < len(tokens) {
		err.Keyword = tokens[index-1]
	}
	ctx.Log.Errorf("%v", err)
	return err
}
