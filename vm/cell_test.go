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
)

func TestAtomEqualSameKind(t *testing.T) {
	assert.True(t, SInt(3).Equal(SInt(3)))
	assert.False(t, SInt(3).Equal(SInt(4)))
}

func TestAtomEqualNeverCoerces(t *testing.T) {
	// §4.3: EQ is strict Kind+value equality, unlike the arithmetic
	// operators — a signed int and an equal-valued float are not Equal.
	assert.False(t, SInt(3).Equal(Float(3)))
	assert.False(t, SInt(3).Equal(UInt(3)))
	assert.False(t, Char('a').Equal(SInt('a')))
}

func TestAtomNumeric(t *testing.T) {
	assert.True(t, SInt(1).Numeric())
	assert.True(t, UInt(1).Numeric())
	assert.True(t, Float(1).Numeric())
	assert.True(t, Char('a').Numeric())
	assert.False(t, Bool(true).Numeric())
	assert.False(t, String("x").Numeric())
}

func TestTruthEncoding(t *testing.T) {
	// §4.3: any non-empty list is true; the empty list is the sole false
	// value, and it round-trips through BoolCell/Truthy.
	assert.True(t, Truthy(True()))
	assert.False(t, Truthy(False()))
	assert.True(t, Truthy(BoolCell(true)))
	assert.False(t, Truthy(BoolCell(false)))
	assert.True(t, Truthy(ListCell(ListOf(AtomCell(SInt(0))))))
}

func TestCellKindPanicsOnMismatch(t *testing.T) {
	c := AtomCell(SInt(1))
	assert.Panics(t, func() { c.List() })
	assert.Panics(t, func() { c.Inst() })
}

func TestCellEqual(t *testing.T) {
	a := ListCell(ListOf(AtomCell(SInt(1)), AtomCell(SInt(2))))
	b := ListCell(ListOf(AtomCell(SInt(1)), AtomCell(SInt(2))))
	c := ListCell(ListOf(AtomCell(SInt(1)), AtomCell(SInt(3))))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(AtomCell(SInt(1))))
}
