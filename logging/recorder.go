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

package logging

import "fmt"

// Recorder is a Logger that keeps every formatted message it receives, in
// order. It is used by the parser core's own tests to assert that a
// recoverable condition was logged rather than silently swallowed.
type Recorder struct {
	Infos  []string
	Warns  []string
	Errors []string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Infof(format string, args ...any) {
	r.Infos = append(r.Infos, fmt.Sprintf(format, args...))
}

func (r *Recorder) Warnf(format string, args ...any) {
	r.Warns = append(r.Warns, fmt.Sprintf(format, args...))
}

func (r *Recorder) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// All returns every message recorded across all levels, in call order is
// not preserved across levels but is preserved within each.
func (r *Recorder) All() []string {
	all := make([]string, 0, len(r.Infos)+len(r.Warns)+len(r.Errors))
	all = append(all, r.Infos...)
	all = append(all, r.Warns...)
	all = append(all, r.Errors...)
	return all
}
