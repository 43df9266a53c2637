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

// Package secd wires the parser, compiler, and vm packages into the single
// entry point described by §6.1: source text in, result cell out. It exists
// because vm.RunProgram must stay free of a dependency on compiler (which
// itself depends on vm for its instruction-list output), so the full
// source-to-result pipeline lives one level up, at the module root.
package secd

import (
	"github.com/pkg/errors"

	"github.com/gitter-badger/seax/compiler"
	"github.com/gitter-badger/seax/parser"
	"github.com/gitter-badger/seax/vm"
)

// Run parses source, compiles it, and drives the resulting instructions to
// a result cell (§6.1 of the specification). RunProgram, in package vm,
// remains the entry point for callers — such as tests — that already have
// a compiled instruction list and want to skip the front end.
func Run(source string, opts ...vm.Option) (vm.Cell, error) {
	tree, err := parser.Parse(source)
	if err != nil {
		return vm.Cell{}, errors.Wrap(err, "secd: parsing source")
	}
	program, err := compiler.Compile(tree)
	if err != nil {
		return vm.Cell{}, errors.Wrap(err, "secd: compiling source")
	}
	return vm.RunProgram(program, opts...)
}
