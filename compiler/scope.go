// This file is part of secd - https://github.com/gitter-badger/seax
//
// Copyright 2024 The Seax Authors
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

package compiler

// scope is one lambda's parameter list, addressed by position. scopes
// nest: resolve walks outward from the innermost scope, counting levels,
// the same shape as the environment frames the compiled LD instructions
// will address at run time (E[level][pos]).
type scope struct {
	params []string
	parent *scope
}

func newScope(params []string, parent *scope) *scope {
	return &scope{params: params, parent: parent}
}

// resolve finds ident in s or an enclosing scope, returning its (level,
// pos) lexical address: level counts outward from s (0 = s itself), pos
// is its index within that scope's parameter list.
func (s *scope) resolve(ident string) (level, pos int, ok bool) {
	for cur := s; cur != nil; cur = cur.parent {
		for i, p := range cur.params {
			if p == ident {
				return level, i, true
			}
		}
		level++
	}
	return 0, 0, false
}
