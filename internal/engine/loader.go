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
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kwconf/kwconf/internal/preprocess"
)

// LoadConfigFile glob-expands pattern and parses every matching regular,
// non-executable file against tree's root level. pattern is resolved
// relative to the current working directory (a caller-supplied absolute
// path bypasses that).
//
// Unlike the working-directory-mutating original this is modeled on, no
// process-wide chdir ever happens: each opened file resolves its own
// "include" arguments by joining them against that file's own directory,
// carried as a closure over the per-file preprocess.Options rather than a
// saved/restored global.
func LoadConfigFile(ctx *ParseContext, tree *Tree, pattern string) error {
	return loadPattern(ctx, tree, pattern, "")
}

func loadPattern(ctx *ParseContext, tree *Tree, pattern string, baseDir string) error {
	resolved := pattern
	if baseDir != "" && !filepath.IsAbs(pattern) {
		resolved = filepath.Join(baseDir, pattern)
	}

	matches, err := doublestar.FilepathGlob(resolved)
	if err != nil {
		ctx.Log.Warnf("Error reading config file(s): glob(%q) failed: %v", resolved, err)
		return nil
	}
	if len(matches) == 0 {
		ctx.Log.Warnf("No config files matched %q", resolved)
		return nil
	}

	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			ctx.Log.Warnf("Configuration file %q open problem (%v) - skipping", path, err)
			continue
		}
		if info.IsDir() {
			ctx.Log.Warnf("Configuration file %q is a directory - skipping", path)
			continue
		}
		if !info.Mode().IsRegular() || info.Mode().Perm()&0o111 != 0 {
			ctx.Log.Warnf("Configuration file %q is not a regular non-executable file - skipping", path)
			continue
		}

		if err := loadFile(ctx, tree, path); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(ctx *ParseContext, tree *Tree, path string) error {
	ctx.Log.Infof("Opening file %q", path)
	f, err := os.Open(path)
	if err != nil {
		ctx.Log.Warnf("Configuration file %q open problem (%v) - skipping", path, err)
		return nil
	}
	defer f.Close()

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	fileDir := filepath.Dir(absPath)

	var includeErr error
	opts := preprocess.Options{
		ConfigID:    ctx.ConfigID,
		HasConfigID: ctx.HasConfigID,
		MaxLen:      ctx.MaxLen,
		Include: func(includePattern string) error {
			err := loadPattern(ctx, tree, includePattern, fileDir)
			if err != nil && includeErr == nil {
				includeErr = err
			}
			return err
		},
	}

	ls := preprocess.New(f, ctx.Store, opts, ctx.Log)
	if err := processStream(ctx, ls, tree.Roots, false, 0); err != nil {
		return err
	}
	return includeErr
}
