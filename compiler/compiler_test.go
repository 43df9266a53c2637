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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitter-badger/seax/compiler/ast"
	"github.com/gitter-badger/seax/vm"
)

func name(id string) ast.Name { return ast.Name{Ident: id} }

func compileAndRun(t *testing.T, tree ast.Node) vm.Cell {
	t.Helper()
	program, err := Compile(tree)
	require.NoError(t, err)
	result, err := vm.RunProgram(program)
	require.NoError(t, err)
	return result
}

func TestCompileNumConst(t *testing.T) {
	r := compileAndRun(t, ast.NumConst{Value: vm.SInt(7)})
	assert.True(t, r.Equal(vm.AtomCell(vm.SInt(7))))
}

func TestCompileArithmetic(t *testing.T) {
	// (+ 10 10) -> 20 (§8 concrete scenario)
	tree := ast.SExpr{Operator: name("+"), Operands: []ast.Node{
		ast.NumConst{Value: vm.SInt(10)},
		ast.NumConst{Value: vm.SInt(10)},
	}}
	r := compileAndRun(t, tree)
	assert.True(t, r.Equal(vm.AtomCell(vm.SInt(20))))
}

func TestCompileNestedArithmetic(t *testing.T) {
	// (- 20 (+ 5 5)) -> 10
	tree := ast.SExpr{Operator: name("-"), Operands: []ast.Node{
		ast.NumConst{Value: vm.SInt(20)},
		ast.SExpr{Operator: name("+"), Operands: []ast.Node{
			ast.NumConst{Value: vm.SInt(5)},
			ast.NumConst{Value: vm.SInt(5)},
		}},
	}}
	r := compileAndRun(t, tree)
	assert.True(t, r.Equal(vm.AtomCell(vm.SInt(10))))
}

func TestCompileConsCarCdr(t *testing.T) {
	// (cons 10 (cons 20 nil)) -> List(10, 20)
	consExpr := func(a, b ast.Node) ast.Node {
		return ast.SExpr{Operator: name("cons"), Operands: []ast.Node{a, b}}
	}
	tree := consExpr(ast.NumConst{Value: vm.SInt(10)},
		consExpr(ast.NumConst{Value: vm.SInt(20)}, name("nil")))
	r := compileAndRun(t, tree)
	require.True(t, r.IsList())
	assert.True(t, r.List().Equal(vm.ListOf(vm.AtomCell(vm.SInt(10)), vm.AtomCell(vm.SInt(20)))))

	carTree := ast.SExpr{Operator: name("car"), Operands: []ast.Node{tree}}
	r = compileAndRun(t, carTree)
	assert.True(t, r.Equal(vm.AtomCell(vm.SInt(10))))

	cdrTree := ast.SExpr{Operator: name("cdr"), Operands: []ast.Node{tree}}
	r = compileAndRun(t, cdrTree)
	require.True(t, r.IsList())
	assert.True(t, r.List().Equal(vm.ListOf(vm.AtomCell(vm.SInt(20)))))
}

func TestCompileIf(t *testing.T) {
	// (+ 10 (if (nil? nil) 10 20)) -> 20
	tree := ast.SExpr{Operator: name("+"), Operands: []ast.Node{
		ast.NumConst{Value: vm.SInt(10)},
		ast.SExpr{Operator: name("if"), Operands: []ast.Node{
			ast.SExpr{Operator: name("nil?"), Operands: []ast.Node{name("nil")}},
			ast.NumConst{Value: vm.SInt(10)},
			ast.NumConst{Value: vm.SInt(20)},
		}},
	}}
	r := compileAndRun(t, tree)
	assert.True(t, r.Equal(vm.AtomCell(vm.SInt(20))))
}

func TestCompileIfBoolLiterals(t *testing.T) {
	// (if (= 0 (- 1 1)) #t #f) -> Atom(SInt 1) (§8 concrete scenario)
	tree := ast.SExpr{Operator: name("if"), Operands: []ast.Node{
		ast.SExpr{Operator: name("="), Operands: []ast.Node{
			ast.NumConst{Value: vm.SInt(0)},
			ast.SExpr{Operator: name("-"), Operands: []ast.Node{
				ast.NumConst{Value: vm.SInt(1)},
				ast.NumConst{Value: vm.SInt(1)},
			}},
		}},
		ast.BoolConst{Value: true},
		ast.BoolConst{Value: false},
	}}
	r := compileAndRun(t, tree)
	assert.True(t, r.Equal(vm.AtomCell(vm.SInt(1))))
}

func TestCompileIfFalseLiteralTakesElseBranch(t *testing.T) {
	// (if #f 10 20) -> 20: #f must compile to the falsy empty list, not a
	// truthy Bool atom, or SEL would take the then branch instead.
	tree := ast.SExpr{Operator: name("if"), Operands: []ast.Node{
		ast.BoolConst{Value: false},
		ast.NumConst{Value: vm.SInt(10)},
		ast.NumConst{Value: vm.SInt(20)},
	}}
	r := compileAndRun(t, tree)
	assert.True(t, r.Equal(vm.AtomCell(vm.SInt(20))))
}

func TestCompileLambdaApplication(t *testing.T) {
	// ((lambda (x y) (+ x y)) 2 3) -> 5, exercised via let (which desugars
	// to exactly this immediately-applied lambda shape — see compileLet).
	letTree := ast.SExpr{
		Operator: name("let"),
		Operands: []ast.Node{
			ast.ListConst{Elements: []ast.Node{
				ast.ListConst{Elements: []ast.Node{name("x"), ast.NumConst{Value: vm.SInt(2)}}},
				ast.ListConst{Elements: []ast.Node{name("y"), ast.NumConst{Value: vm.SInt(3)}}},
			}},
			ast.SExpr{Operator: name("+"), Operands: []ast.Node{name("x"), name("y")}},
		},
	}
	r := compileAndRun(t, letTree)
	assert.True(t, r.Equal(vm.AtomCell(vm.SInt(5))))
}

func TestCompileNestedLambdaCapturesOuterScope(t *testing.T) {
	// ((lambda (z) ((lambda (x y) (+ (- x y) z)) 3 5)) 6) -> 4
	inner := ast.SExpr{
		Operator: name("let"),
		Operands: []ast.Node{
			ast.ListConst{Elements: []ast.Node{
				ast.ListConst{Elements: []ast.Node{name("x"), ast.NumConst{Value: vm.SInt(3)}}},
				ast.ListConst{Elements: []ast.Node{name("y"), ast.NumConst{Value: vm.SInt(5)}}},
			}},
			ast.SExpr{Operator: name("+"), Operands: []ast.Node{
				ast.SExpr{Operator: name("-"), Operands: []ast.Node{name("x"), name("y")}},
				name("z"),
			}},
		},
	}
	outer := ast.SExpr{
		Operator: name("let"),
		Operands: []ast.Node{
			ast.ListConst{Elements: []ast.Node{
				ast.ListConst{Elements: []ast.Node{name("z"), ast.NumConst{Value: vm.SInt(6)}}},
			}},
			inner,
		},
	}
	r := compileAndRun(t, outer)
	assert.True(t, r.Equal(vm.AtomCell(vm.SInt(4))))
}

func TestCompileLetrecMutualRecursion(t *testing.T) {
	// letrec-bound even?/odd? applied to a small number, exercising
	// DUM/RAP's destructive frame substitution end to end.
	tree := ast.SExpr{
		Operator: name("letrec"),
		Operands: []ast.Node{
			ast.ListConst{Elements: []ast.Node{
				ast.ListConst{Elements: []ast.Node{
					name("even?"),
					ast.SExpr{
						Operator: name("lambda"),
						Operands: []ast.Node{
							ast.ListConst{Elements: []ast.Node{name("n")}},
							ast.SExpr{Operator: name("if"), Operands: []ast.Node{
								ast.SExpr{Operator: name("="), Operands: []ast.Node{name("n"), ast.NumConst{Value: vm.SInt(0)}}},
								ast.BoolConst{Value: true},
								ast.SExpr{Operator: name("odd?"), Operands: []ast.Node{
									ast.SExpr{Operator: name("-"), Operands: []ast.Node{name("n"), ast.NumConst{Value: vm.SInt(1)}}},
								}},
							}},
						},
					},
				}},
				ast.ListConst{Elements: []ast.Node{
					name("odd?"),
					ast.SExpr{
						Operator: name("lambda"),
						Operands: []ast.Node{
							ast.ListConst{Elements: []ast.Node{name("n")}},
							ast.SExpr{Operator: name("if"), Operands: []ast.Node{
								ast.SExpr{Operator: name("="), Operands: []ast.Node{name("n"), ast.NumConst{Value: vm.SInt(0)}}},
								ast.BoolConst{Value: false},
								ast.SExpr{Operator: name("even?"), Operands: []ast.Node{
									ast.SExpr{Operator: name("-"), Operands: []ast.Node{name("n"), ast.NumConst{Value: vm.SInt(1)}}},
								}},
							}},
						},
					},
				}},
			}},
			ast.SExpr{Operator: name("even?"), Operands: []ast.Node{ast.NumConst{Value: vm.SInt(4)}}},
		},
	}
	r := compileAndRun(t, tree)
	assert.True(t, vm.Truthy(r))
}

func TestCompileUnboundVariableIsCompileError(t *testing.T) {
	_, err := Compile(name("nowhere"))
	require.Error(t, err)
	var compileErr *vm.CompileError
	assert.ErrorAs(t, err, &compileErr)
}

func TestDisassembleRendersOpcodes(t *testing.T) {
	program, err := Compile(ast.SExpr{Operator: name("+"), Operands: []ast.Node{
		ast.NumConst{Value: vm.SInt(1)},
		ast.NumConst{Value: vm.SInt(2)},
	}})
	require.NoError(t, err)
	out := Disassemble(program)
	assert.Contains(t, out, "LDC")
	assert.Contains(t, out, "ADD")
}
