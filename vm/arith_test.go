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

package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithSameTagPreservesTag(t *testing.T) {
	r, err := Arith(opAdd, SInt(3), SInt(4))
	require.NoError(t, err)
	assert.Equal(t, KindSInt, r.Kind)
	assert.Equal(t, int64(7), r.SIntValue())

	r, err = Arith(opMul, UInt(3), UInt(4))
	require.NoError(t, err)
	assert.Equal(t, KindUInt, r.Kind)
	assert.Equal(t, uint64(12), r.UIntValue())
}

func TestArithMixedIntFloatPromotes(t *testing.T) {
	r, err := Arith(opAdd, SInt(3), Float(0.5))
	require.NoError(t, err)
	assert.Equal(t, KindFloat, r.Kind)
	assert.Equal(t, 3.5, r.FloatValue())
}

func TestArithMixedSignPromotesToFloat(t *testing.T) {
	// §4.2: mixed signed/unsigned promotes to float to avoid sign ambiguity.
	r, err := Arith(opAdd, SInt(3), UInt(4))
	require.NoError(t, err)
	assert.Equal(t, KindFloat, r.Kind)
	assert.Equal(t, 7.0, r.FloatValue())
}

func TestArithCharCoercesToCodepoint(t *testing.T) {
	r, err := Arith(opAdd, Char('a'), SInt(1))
	require.NoError(t, err)
	assert.Equal(t, KindSInt, r.Kind)
	assert.Equal(t, int64('a')+1, r.SIntValue())
}

func TestArithDivTruncatesTowardZero(t *testing.T) {
	r, err := Arith(opDiv, SInt(-7), SInt(2))
	require.NoError(t, err)
	assert.Equal(t, int64(-3), r.SIntValue())
}

func TestArithModFollowsSignOfDividend(t *testing.T) {
	r, err := Arith(opMod, SInt(-7), SInt(2))
	require.NoError(t, err)
	assert.Equal(t, int64(-1), r.SIntValue())
}

func TestArithDivByZeroIsArithmeticError(t *testing.T) {
	_, err := Arith(opDiv, SInt(1), SInt(0))
	require.Error(t, err)
	var arithErr *ArithmeticError
	require.ErrorAs(t, err, &arithErr)
	assert.Equal(t, "DIV", arithErr.Op)
}

func TestArithModByZeroIsArithmeticError(t *testing.T) {
	_, err := Arith(opMod, SInt(1), SInt(0))
	require.Error(t, err)
	var arithErr *ArithmeticError
	require.ErrorAs(t, err, &arithErr)
	assert.Equal(t, "MOD", arithErr.Op)
}

func TestFDivAlwaysFloat(t *testing.T) {
	// §4.6: FDIV always yields float, even for two integer operands that
	// divide evenly.
	r := FDiv(SInt(10), SInt(4))
	assert.Equal(t, KindFloat, r.Kind)
	assert.Equal(t, 2.5, r.FloatValue())
}

func TestCompareUsesArithCoercion(t *testing.T) {
	assert.Equal(t, -1, Compare(SInt(1), SInt(2)))
	assert.Equal(t, 0, Compare(SInt(2), Float(2.0)))
	assert.Equal(t, 1, Compare(Float(3.5), SInt(3)))
}
