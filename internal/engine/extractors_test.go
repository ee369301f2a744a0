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
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/kwconf/kwconf/internal/defsstore"
	"github.com/kwconf/kwconf/internal/preprocess"
	"github.com/kwconf/kwconf/kwerr"
	"github.com/kwconf/kwconf/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() *ParseContext {
	return &ParseContext{Log: logging.NewRecorder(), Store: defsstore.New(), MaxLen: DefaultMaxLen}
}

func TestStringAtInRange(t *testing.T) {
	ctx := newTestContext()
	s, err := StringAt(ctx, []string{"real_server", "80"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "80", s)
}

func TestStringAtPastEndIsFatal(t *testing.T) {
	ctx := newTestContext()
	_, err := StringAt(ctx, []string{"real_server"}, 1)
	require.Error(t, err)
	var fatal *kwerr.FatalConfigError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, "real_server", fatal.Keyword)
}

func TestUintAtParsesAndRejectsNonNumeric(t *testing.T) {
	ctx := newTestContext()
	v, err := UintAt(ctx, []string{"weight", "5"}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)

	_, err = UintAt(ctx, []string{"weight", "five"}, 1)
	assert.Error(t, err)
}

func TestTimerAtScalesAndSaturates(t *testing.T) {
	ctx := newTestContext()
	d, err := TimerAt(ctx, []string{"delay_loop", "6"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 6*time.Second, d)

	d, err = TimerAt(ctx, []string{"delay_loop", "18446744073709551615"}, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(1<<63-1), d)
}

// TestTimerAtSaturatesJustPastSafeBound exercises the gap between "ticks fit
// in int64" and "ticks scaled to nanoseconds fit in int64" - the true
// overflow boundary, one scale factor (1000, ticks -> ns) tighter than the
// ticks-only bound.
func TestTimerAtSaturatesJustPastSafeBound(t *testing.T) {
	ctx := newTestContext()
	const maxSeconds = math.MaxInt64 / (TimerHZ * 1000)

	d, err := TimerAt(ctx, []string{"delay_loop", strconv.FormatUint(maxSeconds, 10)}, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(maxSeconds*TimerHZ)*time.Microsecond, d)

	d, err = TimerAt(ctx, []string{"delay_loop", strconv.FormatUint(maxSeconds+1, 10)}, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(1<<63-1), d)
}

func TestBoolAtRecognizesSynonyms(t *testing.T) {
	ctx := newTestContext()
	for _, tok := range []string{"true", "on", "yes"} {
		v, err := BoolAt(ctx, []string{"enable", tok}, 1)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, tok := range []string{"false", "off", "no"} {
		v, err := BoolAt(ctx, []string{"enable", tok}, 1)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := BoolAt(ctx, []string{"enable", "maybe"}, 1)
	assert.Error(t, err)
}

func TestReadValueBlockSingleLine(t *testing.T) {
	ctx := newTestContext()
	ctx.ls = preprocess.New(strings.NewReader(""), ctx.Store, preprocess.Options{}, ctx.Log)
	values, err := ReadValueBlock(ctx, []string{"static_ipaddress", "10.0.0.1", "dev", "eth0"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "dev", "eth0"}, values)
}

func TestReadValueBlockMultiLine(t *testing.T) {
	ctx := newTestContext()
	ctx.ls = preprocess.New(strings.NewReader("10.0.0.1 dev eth0\n10.0.0.2 dev eth1\n}\nafter\n"),
		ctx.Store, preprocess.Options{}, ctx.Log)
	values, err := ReadValueBlock(ctx, []string{"static_ipaddress", "{"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "dev", "eth0", "10.0.0.2", "dev", "eth1"}, values)

	line, ok := ctx.ls.ReadLine()
	require.True(t, ok)
	assert.Equal(t, "after", line)
}
