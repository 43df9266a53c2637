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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitter-badger/seax/compiler/ast"
	"github.com/gitter-badger/seax/vm"
)

func TestParseNumConst(t *testing.T) {
	n, err := Parse("42")
	require.NoError(t, err)
	assert.Equal(t, ast.NumConst{Value: vm.SInt(42)}, n)
}

func TestParseNegativeInt(t *testing.T) {
	n, err := Parse("-42")
	require.NoError(t, err)
	assert.Equal(t, ast.NumConst{Value: vm.SInt(-42)}, n)
}

func TestParseUnsignedInt(t *testing.T) {
	n, err := Parse("42u")
	require.NoError(t, err)
	assert.Equal(t, ast.NumConst{Value: vm.UInt(42)}, n)
}

func TestParseFloat(t *testing.T) {
	n, err := Parse("3.14")
	require.NoError(t, err)
	assert.Equal(t, ast.NumConst{Value: vm.Float(3.14)}, n)
}

func TestParseHexInt(t *testing.T) {
	n, err := Parse("#x1A")
	require.NoError(t, err)
	assert.Equal(t, ast.NumConst{Value: vm.SInt(26)}, n)
}

func TestParseBooleans(t *testing.T) {
	for _, src := range []string{"#t", "#T", "true"} {
		n, err := Parse(src)
		require.NoError(t, err)
		assert.Equal(t, ast.BoolConst{Value: true}, n)
	}
	for _, src := range []string{"#f", "#F", "false"} {
		n, err := Parse(src)
		require.NoError(t, err)
		assert.Equal(t, ast.BoolConst{Value: false}, n)
	}
}

func TestParseCharLiterals(t *testing.T) {
	n, err := Parse(`#\a`)
	require.NoError(t, err)
	assert.Equal(t, ast.CharConst{Value: 'a'}, n)

	n, err = Parse(`#\newline`)
	require.NoError(t, err)
	assert.Equal(t, ast.CharConst{Value: '\n'}, n)

	n, err = Parse(`#\x41`)
	require.NoError(t, err)
	assert.Equal(t, ast.CharConst{Value: 'A'}, n)
}

func TestParseName(t *testing.T) {
	n, err := Parse("foo-bar?")
	require.NoError(t, err)
	assert.Equal(t, ast.Name{Ident: "foo-bar?"}, n)
}

func TestParseOperatorNames(t *testing.T) {
	for _, src := range []string{"+", "-", "*", "/", "%", "=", ">", ">=", "<", "<="} {
		n, err := Parse(src)
		require.NoError(t, err, src)
		assert.Equal(t, ast.Name{Ident: src}, n, src)
	}
}

func TestParseSExprApplication(t *testing.T) {
	n, err := Parse("(+ 10 10)")
	require.NoError(t, err)
	assert.Equal(t, ast.SExpr{
		Operator: ast.Name{Ident: "+"},
		Operands: []ast.Node{
			ast.NumConst{Value: vm.SInt(10)},
			ast.NumConst{Value: vm.SInt(10)},
		},
	}, n)
}

func TestParseNestedSExpr(t *testing.T) {
	n, err := Parse("(- 20 (+ 5 5))")
	require.NoError(t, err)
	assert.Equal(t, ast.SExpr{
		Operator: ast.Name{Ident: "-"},
		Operands: []ast.Node{
			ast.NumConst{Value: vm.SInt(20)},
			ast.SExpr{
				Operator: ast.Name{Ident: "+"},
				Operands: []ast.Node{
					ast.NumConst{Value: vm.SInt(5)},
					ast.NumConst{Value: vm.SInt(5)},
				},
			},
		},
	}, n)
}

func TestParseLambda(t *testing.T) {
	n, err := Parse("(lambda (x y) (+ x y))")
	require.NoError(t, err)
	sexpr, ok := n.(ast.SExpr)
	require.True(t, ok)
	assert.Equal(t, "lambda", sexpr.Operator.Ident)
	require.Len(t, sexpr.Operands, 2)
	// The parameter list "(x y)" parses as an SExpr (its first element is
	// a Name), the same ambiguity the compiler's nodeAsNameList resolves.
	params, ok := sexpr.Operands[0].(ast.SExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Name{Ident: "x"}, params.Operator)
	assert.Equal(t, []ast.Node{ast.Name{Ident: "y"}}, params.Operands)
}

func TestParseEmptyList(t *testing.T) {
	n, err := Parse("()")
	require.NoError(t, err)
	assert.Equal(t, ast.ListConst{}, n)
}

func TestParseLiteralListOfNumbers(t *testing.T) {
	// A parenthesized form not led by a name parses as a ListConst.
	n, err := Parse("(1 2 3)")
	require.NoError(t, err)
	assert.Equal(t, ast.ListConst{Elements: []ast.Node{
		ast.NumConst{Value: vm.SInt(1)},
		ast.NumConst{Value: vm.SInt(2)},
		ast.NumConst{Value: vm.SInt(3)},
	}}, n)
}

func TestParseTrailingGarbageIsError(t *testing.T) {
	_, err := Parse("(+ 1 2) extra")
	require.Error(t, err)
	var parseErr *vm.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseLineComment(t *testing.T) {
	n, err := Parse("(+ 1 2) ; trailing comment\n")
	require.NoError(t, err)
	assert.Equal(t, ast.SExpr{
		Operator: ast.Name{Ident: "+"},
		Operands: []ast.Node{
			ast.NumConst{Value: vm.SInt(1)},
			ast.NumConst{Value: vm.SInt(2)},
		},
	}, n)
}
