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

// Package compiler lowers the §6.2 AST to the §6.3 instruction list: the
// standard SECD translation of let/lambda/if, arithmetic, and the list
// primitives, required by the specification's design notes to produce
// programs conforming to the vm package's ISA contract.
package compiler

import (
	"github.com/gitter-badger/seax/compiler/ast"
	"github.com/gitter-badger/seax/vm"
)

// primitives maps an operator name straight to the opcode it compiles to.
// Each of these takes exactly two operands, compiled right then left so
// that the left operand is the first one popped (see
// compileBinaryPrimitive).
var primitives = map[string]vm.Inst{
	"+":    vm.ADD,
	"-":    vm.SUB,
	"*":    vm.MUL,
	"/":    vm.DIV,
	"%":    vm.MOD,
	"fdiv": vm.FDIV,
	"=":    vm.EQ,
	">":    vm.GT,
	">=":   vm.GTE,
	"<":    vm.LT,
	"<=":   vm.LTE,
	"cons": vm.CONS,
}

// unaryPrimitives maps a one-operand operator name to its opcode.
var unaryPrimitives = map[string]vm.Inst{
	"atom?": vm.ATOM,
	"car":   vm.CAR,
	"cdr":   vm.CDR,
}

// Compile lowers a top-level expression to the instruction list the vm
// package drives. There is no enclosing scope at the top level: a free
// Name that is not a recognized primitive is a CompileError, since the
// specification's Non-goals exclude a module/global-binding system beyond
// what the REPL front end layers on afterward (see SPEC_FULL.md §9.5).
func Compile(tree ast.Node) (vm.List, error) {
	var out []vm.Cell
	if err := compile(tree, nil, &out); err != nil {
		return vm.List{}, err
	}
	return vm.ListOf(out...), nil
}

func emit(out *[]vm.Cell, cells ...vm.Cell) {
	*out = append(*out, cells...)
}

func inst(op vm.Inst) vm.Cell { return vm.InstCell(op) }

func compile(n ast.Node, sc *scope, out *[]vm.Cell) error {
	switch node := n.(type) {
	case ast.NumConst:
		emit(out, inst(vm.LDC), vm.AtomCell(node.Value))
		return nil

	case ast.BoolConst:
		// #t/#f have no dedicated runtime tag: true compiles to the
		// canonical atom SInt(1), false to the canonical empty list,
		// which is also the §4.3 falsy value every SEL predicate tests.
		if node.Value {
			emit(out, inst(vm.LDC), vm.AtomCell(vm.SInt(1)))
		} else {
			emit(out, inst(vm.NIL))
		}
		return nil

	case ast.CharConst:
		emit(out, inst(vm.LDC), vm.AtomCell(vm.Char(node.Value)))
		return nil

	case ast.Name:
		return compileName(node, sc, out)

	case ast.ListConst:
		return compileListConst(node, sc, out)

	case ast.SExpr:
		return compileSExpr(node, sc, out)

	default:
		return &vm.CompileError{Form: "unknown AST node"}
	}
}

func compileName(n ast.Name, sc *scope, out *[]vm.Cell) error {
	if n.Ident == "nil" {
		emit(out, inst(vm.NIL))
		return nil
	}
	level, pos, ok := sc.resolve(n.Ident)
	if !ok {
		return &vm.CompileError{Form: "unbound variable " + n.Ident}
	}
	addr := vm.ListOf(vm.AtomCell(vm.SInt(int64(level))), vm.AtomCell(vm.SInt(int64(pos))))
	emit(out, inst(vm.LD), vm.ListCell(addr))
	return nil
}

// compileListConst builds the literal list via NIL followed by one CONS
// per element, compiled in reverse so the first element ends up at the
// head: NIL; compile(last); CONS; …; compile(first); CONS.
func compileListConst(n ast.ListConst, sc *scope, out *[]vm.Cell) error {
	emit(out, inst(vm.NIL))
	for i := len(n.Elements) - 1; i >= 0; i-- {
		if err := compile(n.Elements[i], sc, out); err != nil {
			return err
		}
		emit(out, inst(vm.CONS))
	}
	return nil
}

func compileSExpr(n ast.SExpr, sc *scope, out *[]vm.Cell) error {
	switch n.Operator.Ident {
	case "lambda":
		return compileLambda(n, sc, out)
	case "if":
		return compileIf(n, sc, out)
	case "nil?":
		return compileNilCheck(n, sc, out)
	case "let":
		return compileLet(n, sc, out)
	case "letrec":
		return compileLetrec(n, sc, out)
	}
	if op, ok := primitives[n.Operator.Ident]; ok {
		return compileBinaryPrimitive(op, n, sc, out)
	}
	if op, ok := unaryPrimitives[n.Operator.Ident]; ok {
		return compileUnaryPrimitive(op, n, sc, out)
	}
	return compileApplication(n, sc, out)
}

// compileBinaryPrimitive compiles the right operand first, then the left,
// so that the left operand — first in source order — ends up on top of S
// and is the first one the opcode pops. §4.2 pins this: "the first pop is
// the left operand," which SUB/DIV/MOD (not commutative) depend on to
// compute left − right rather than right − left. Evaluation order is
// otherwise unobservable, since this language has no side effects.
func compileBinaryPrimitive(op vm.Inst, n ast.SExpr, sc *scope, out *[]vm.Cell) error {
	if len(n.Operands) != 2 {
		return &vm.CompileError{Form: n.Operator.Ident + ": expected 2 operands"}
	}
	if err := compile(n.Operands[1], sc, out); err != nil {
		return err
	}
	if err := compile(n.Operands[0], sc, out); err != nil {
		return err
	}
	emit(out, inst(op))
	return nil
}

func compileUnaryPrimitive(op vm.Inst, n ast.SExpr, sc *scope, out *[]vm.Cell) error {
	if len(n.Operands) != 1 {
		return &vm.CompileError{Form: n.Operator.Ident + ": expected 1 operand"}
	}
	if err := compile(n.Operands[0], sc, out); err != nil {
		return err
	}
	emit(out, inst(op))
	return nil
}

func compileNilCheck(n ast.SExpr, sc *scope, out *[]vm.Cell) error {
	if len(n.Operands) != 1 {
		return &vm.CompileError{Form: "nil?: expected 1 operand"}
	}
	if err := compile(n.Operands[0], sc, out); err != nil {
		return err
	}
	emit(out, inst(vm.NIL), inst(vm.EQ))
	return nil
}

// compileIf compiles (if cond then else) to: compile(cond); SEL
// <then-branch ++ JOIN> <else-branch ++ JOIN>.
func compileIf(n ast.SExpr, sc *scope, out *[]vm.Cell) error {
	if len(n.Operands) != 3 {
		return &vm.CompileError{Form: "if: expected (if cond then else)"}
	}
	if err := compile(n.Operands[0], sc, out); err != nil {
		return err
	}
	var thenOut, elseOut []vm.Cell
	if err := compile(n.Operands[1], sc, &thenOut); err != nil {
		return err
	}
	thenOut = append(thenOut, inst(vm.JOIN))
	if err := compile(n.Operands[2], sc, &elseOut); err != nil {
		return err
	}
	elseOut = append(elseOut, inst(vm.JOIN))
	emit(out, inst(vm.SEL), vm.ListCell(vm.ListOf(thenOut...)), vm.ListCell(vm.ListOf(elseOut...)))
	return nil
}

// nodeAsExprList returns the flat sequence of sub-expressions a parenthesized
// form denotes. The parser has no notion of "this paren position is a
// parameter list" — following the reference grammar, it reads any "(name
// …)" as an SExpr (operator + operands) and anything else parenthesized as
// a ListConst. A parameter list or binding list is itself just a
// parenthesized sequence, so when it happens to start with a name (the
// overwhelmingly common case — "(x y)", "(n1 e1)") the parser hands the
// compiler an SExpr instead of a ListConst. Recover the flat sequence here
// regardless of which shape arrived.
func nodeAsExprList(n ast.Node) ([]ast.Node, bool) {
	switch v := n.(type) {
	case ast.ListConst:
		return v.Elements, true
	case ast.SExpr:
		elems := make([]ast.Node, 0, len(v.Operands)+1)
		elems = append(elems, v.Operator)
		elems = append(elems, v.Operands...)
		return elems, true
	default:
		return nil, false
	}
}

// nodeAsNameList is nodeAsExprList restricted to sequences of bare names,
// as required for a lambda parameter list.
func nodeAsNameList(n ast.Node) ([]string, bool) {
	elems, ok := nodeAsExprList(n)
	if !ok {
		return nil, false
	}
	names := make([]string, len(elems))
	for i, e := range elems {
		name, ok := e.(ast.Name)
		if !ok {
			return nil, false
		}
		names[i] = name.Ident
	}
	return names, true
}

// compileLambda compiles (lambda (params…) body) to LDF <body ++ RET>,
// with params bound at level 0 of a new scope nested under sc.
func compileLambda(n ast.SExpr, sc *scope, out *[]vm.Cell) error {
	if len(n.Operands) != 2 {
		return &vm.CompileError{Form: "lambda: expected (lambda (params…) body)"}
	}
	params, ok := nodeAsNameList(n.Operands[0])
	if !ok {
		return &vm.CompileError{Form: "lambda: parameter list must be a list of names"}
	}

	inner := newScope(params, sc)
	var body []vm.Cell
	if err := compile(n.Operands[1], inner, &body); err != nil {
		return err
	}
	body = append(body, inst(vm.RET))
	emit(out, inst(vm.LDF), vm.ListCell(vm.ListOf(body...)))
	return nil
}

// binding is one (name expr) pair from a let/letrec binding list.
type binding struct {
	name string
	expr ast.Node
}

func parseBindings(n ast.Node, form string) ([]binding, error) {
	elems, ok := nodeAsExprList(n)
	if !ok {
		return nil, &vm.CompileError{Form: form + ": bindings must be a list"}
	}
	out := make([]binding, 0, len(elems))
	for _, b := range elems {
		pair, ok := nodeAsExprList(b)
		if !ok || len(pair) != 2 {
			return nil, &vm.CompileError{Form: form + ": each binding must be (name expr)"}
		}
		name, ok := pair[0].(ast.Name)
		if !ok {
			return nil, &vm.CompileError{Form: form + ": binding name must be a name"}
		}
		out = append(out, binding{name: name.Ident, expr: pair[1]})
	}
	return out, nil
}

// compileLet compiles (let ((n1 e1) (n2 e2) …) body), the non-recursive
// binding form, by direct desugaring to an immediately-applied lambda:
// ((lambda (n1 n2 …) body) e1 e2 …). No new opcode is needed — it is
// exactly the application a hand-written (lambda …) call already compiles
// to in compileApplication.
func compileLet(n ast.SExpr, sc *scope, out *[]vm.Cell) error {
	if len(n.Operands) != 2 {
		return &vm.CompileError{Form: "let: expected (let (bindings…) body)"}
	}
	bindings, err := parseBindings(n.Operands[0], "let")
	if err != nil {
		return err
	}
	names := make([]ast.Node, len(bindings))
	for i, b := range bindings {
		names[i] = ast.Name{Ident: b.name}
	}
	lambda := ast.SExpr{
		Operator: ast.Name{Ident: "lambda"},
		Operands: []ast.Node{ast.ListConst{Elements: names}, n.Operands[1]},
	}
	operands := make([]ast.Node, len(bindings))
	for i, b := range bindings {
		operands[i] = b.expr
	}
	return compileApplicationOf(lambda, operands, sc, out)
}

// compileLetrec compiles (letrec ((n1 e1) (n2 e2) …) body), the mutually
// recursive binding form, using DUM/RAP exactly as described in §9's
// design notes: DUM reserves the frame the bindings and the body will
// share; each binding (almost always a lambda) is compiled under a scope
// that already resolves n1…nk at level 0, so a binding can reference its
// siblings (and itself) before RAP ever fills the frame in; RAP then
// substitutes the evaluated bindings for the dummy and invokes the body.
func compileLetrec(n ast.SExpr, sc *scope, out *[]vm.Cell) error {
	if len(n.Operands) != 2 {
		return &vm.CompileError{Form: "letrec: expected (letrec (bindings…) body)"}
	}
	bindings, err := parseBindings(n.Operands[0], "letrec")
	if err != nil {
		return err
	}
	names := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = b.name
	}
	inner := newScope(names, sc)

	emit(out, inst(vm.DUM))

	emit(out, inst(vm.NIL))
	for i := len(bindings) - 1; i >= 0; i-- {
		if err := compile(bindings[i].expr, inner, out); err != nil {
			return err
		}
		emit(out, inst(vm.CONS))
	}

	var body []vm.Cell
	if err := compile(n.Operands[1], inner, &body); err != nil {
		return err
	}
	body = append(body, inst(vm.RET))
	emit(out, inst(vm.LDF), vm.ListCell(vm.ListOf(body...)))

	emit(out, inst(vm.RAP))
	return nil
}

// compileApplication compiles (f a1 a2 …) where f is the SExpr's own
// operator Name.
func compileApplication(n ast.SExpr, sc *scope, out *[]vm.Cell) error {
	operands := make([]ast.Node, len(n.Operands))
	copy(operands, n.Operands)
	return compileApplicationOf(n.Operator, operands, sc, out)
}

// compileApplicationOf compiles an application of an arbitrary callee
// expression (a Name, or — as compileLet needs — a freshly built lambda
// SExpr) to operands: build the args list (NIL then one CONS per
// argument, compiled in reverse, same as ListConst); compile callee,
// which must push a closure; AP.
func compileApplicationOf(callee ast.Node, operands []ast.Node, sc *scope, out *[]vm.Cell) error {
	emit(out, inst(vm.NIL))
	for i := len(operands) - 1; i >= 0; i-- {
		if err := compile(operands[i], sc, out); err != nil {
			return err
		}
		emit(out, inst(vm.CONS))
	}
	if err := compile(callee, sc, out); err != nil {
		return err
	}
	emit(out, inst(vm.AP))
	return nil
}
