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

// Package ast defines the schema the parser produces and the compiler
// consumes (§6.2): a closed set of six expression node types. There is
// deliberately no visitor interface or general tree-walking machinery —
// the compiler type-switches on these directly, the same way the
// reference compiler in the retrieved corpus switches on its own AST.
package ast

import "github.com/gitter-badger/seax/vm"

// Node is the sealed interface every expression node implements. The
// unexported method prevents types outside this package from satisfying
// it, keeping the set of node kinds closed per §6.2.
type Node interface {
	astNode()
}

// Name is a bare identifier reference: a variable or a primitive operator
// name appearing in operator position.
type Name struct {
	Ident string
}

// NumConst is a numeric literal: signed int, unsigned int, or float.
type NumConst struct {
	Value vm.Atom
}

// BoolConst is a boolean literal (#t, #T, true, #f, #F, false).
type BoolConst struct {
	Value bool
}

// CharConst is a character literal.
type CharConst struct {
	Value rune
}

// ListConst is a literal, self-evaluating list of expressions, e.g. the
// quoted form of compiler output, or a literal used directly in source.
type ListConst struct {
	Elements []Node
}

// SExpr is an application or special form: (operator operand…). Operator
// is always a Name; special forms (lambda, if) are recognized by the
// compiler on Operator.Ident, everything else compiles as application.
type SExpr struct {
	Operator Name
	Operands []Node
}

func (Name) astNode()      {}
func (NumConst) astNode()  {}
func (BoolConst) astNode() {}
func (CharConst) astNode() {}
func (ListConst) astNode() {}
func (SExpr) astNode()     {}
