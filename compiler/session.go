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

import (
	"github.com/gitter-badger/seax/compiler/ast"
	"github.com/gitter-badger/seax/vm"
)

// Session compiles successive top-level fragments against one growing
// top-level scope, the compiler-side half of the REPL's "(define name
// expr)" support (SPEC_FULL.md §9.5). Every fragment — a plain
// expression or the right-hand side of a define — is compiled with this
// scope at level 0, so it can freely reference names defined in earlier
// fragments of the same session. The session introduces no new opcode:
// a define still compiles to an ordinary expression program: the
// caller evaluates it and extends E[0] itself (see cmd/secd/repl.go).
type Session struct {
	names []string
}

// NewSession starts a REPL session with no top-level bindings yet.
func NewSession() *Session {
	return &Session{}
}

// CompileFragment compiles tree against the session's current top-level
// names. It does not, by itself, register any new name.
func (sess *Session) CompileFragment(tree ast.Node) (vm.List, error) {
	sc := newScope(sess.names, nil)
	var out []vm.Cell
	if err := compile(tree, sc, &out); err != nil {
		return vm.List{}, err
	}
	return vm.ListOf(out...), nil
}

// Define registers name as a new top-level binding, to be resolved at
// level 0, position 0 by every fragment compiled afterward. The caller
// must push the bound value onto the live E[0] frame in the same order
// — most recently defined name at position 0 — so the VM's frame
// layout matches the addresses this method hands out.
func (sess *Session) Define(name string) {
	sess.names = append([]string{name}, sess.names...)
}
