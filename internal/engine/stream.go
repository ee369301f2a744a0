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
	"github.com/kwconf/kwconf/internal/preprocess"
	"github.com/kwconf/kwconf/internal/token"
)

const (
	bob = "{"
	eob = "}"
)

// processStream is the recursive descent driving one keyword-tree level
// against the logical lines ls yields. needBOB means the caller's own
// keyword line didn't end in "{", so the opening brace is expected as the
// very first line handled here. kwLevel is the recursion depth (0 at the
// root); a "}" only closes a level below the root, matching a stray "}" at
// the top of a file falling through to "unknown keyword" instead.
func processStream(ctx *ParseContext, ls *preprocess.LineSource, level []*Node, needBOB bool, kwLevel int) error {
	prevLS := ctx.ls
	ctx.ls = ls
	defer func() { ctx.ls = prevLS }()

	skip := 0 // 0 = not skipping; positive = nesting depth of a skipped block; -1 = awaiting its opening "{"

	for {
		line, ok := ls.ReadLine()
		if !ok {
			return nil
		}
		tokens := token.Tokenize(line, ctx.Log)
		if len(tokens) == 0 {
			continue
		}
		head := tokens[0]

		if skip == -1 {
			if head == bob {
				skip = 1
				continue
			}
			skip = 0
		}
		if skip > 0 {
			for _, tok := range tokens {
				switch tok {
				case bob:
					skip++
				case eob:
					skip--
				}
			}
			continue
		}

		if needBOB {
			needBOB = false
			if head == bob {
				continue
			}
			ctx.Log.Warnf("Missing '{' at beginning of configuration block")
			// Fall through: treat this line as the block's first content.
		} else if head == bob {
			ctx.Log.Warnf("Unexpected '{' - ignoring")
			continue
		}

		if head == eob && kwLevel > 0 {
			return nil
		}

		matched := false
		for _, node := range level {
			if node.Name != head {
				continue
			}
			matched = true

			lineTokens := tokens
			childNeedBOB := true
			if tokens[len(tokens)-1] == bob {
				childNeedBOB = false
				if len(node.Sub) > 0 {
					lineTokens = tokens[:len(tokens)-1]
				}
			}

			if !node.Active {
				if childNeedBOB {
					skip = -1
				} else {
					skip = 1
				}
				break
			}

			ctx.consumeSkipRequest()
			if node.Handler != nil {
				if err := node.Handler(ctx, lineTokens); err != nil {
					return err
				}
			}

			if len(node.Sub) == 0 {
				break
			}

			if ctx.consumeSkipRequest() {
				if childNeedBOB {
					skip = -1
				} else {
					skip = 1
				}
				break
			}

			if err := processStream(ctx, ls, node.Sub, childNeedBOB, kwLevel+1); err != nil {
				return err
			}
			if node.CloseHandler != nil {
				node.CloseHandler(ctx)
			}
			break
		}

		if !matched {
			ctx.Log.Warnf("Unknown keyword %q", head)
		}
	}
}
