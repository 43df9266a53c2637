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

import "fmt"

// AtomKind selects which field of an Atom is meaningful.
type AtomKind uint8

// The closed set of atom variants.
const (
	KindSInt AtomKind = iota
	KindUInt
	KindFloat
	KindChar
	KindBool
	KindString
)

func (k AtomKind) String() string {
	switch k {
	case KindSInt:
		return "sint"
	case KindUInt:
		return "uint"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Atom is a tagged scalar: a signed integer, unsigned integer, float,
// character, boolean, or immutable string. Exactly one of the unexported
// fields holds a meaningful value, selected by Kind.
type Atom struct {
	Kind AtomKind
	i    int64
	u    uint64
	f    float64
	c    rune
	b    bool
	s    string
}

// SInt builds a signed integer atom.
func SInt(v int64) Atom { return Atom{Kind: KindSInt, i: v} }

// UInt builds an unsigned integer atom.
func UInt(v uint64) Atom { return Atom{Kind: KindUInt, u: v} }

// Float builds a floating-point atom.
func Float(v float64) Atom { return Atom{Kind: KindFloat, f: v} }

// Char builds a character atom.
func Char(v rune) Atom { return Atom{Kind: KindChar, c: v} }

// Bool builds a boolean atom.
func Bool(v bool) Atom { return Atom{Kind: KindBool, b: v} }

// String builds a string atom.
func String(v string) Atom { return Atom{Kind: KindString, s: v} }

// SIntValue returns the signed integer value. It panics if Kind is not KindSInt.
func (a Atom) SIntValue() int64 {
	a.mustBe(KindSInt)
	return a.i
}

// UIntValue returns the unsigned integer value. It panics if Kind is not KindUInt.
func (a Atom) UIntValue() uint64 {
	a.mustBe(KindUInt)
	return a.u
}

// FloatValue returns the float value. It panics if Kind is not KindFloat.
func (a Atom) FloatValue() float64 {
	a.mustBe(KindFloat)
	return a.f
}

// CharValue returns the character value. It panics if Kind is not KindChar.
func (a Atom) CharValue() rune {
	a.mustBe(KindChar)
	return a.c
}

// BoolValue returns the boolean value. It panics if Kind is not KindBool.
func (a Atom) BoolValue() bool {
	a.mustBe(KindBool)
	return a.b
}

// StringValue returns the string value. It panics if Kind is not KindString.
func (a Atom) StringValue() string {
	a.mustBe(KindString)
	return a.s
}

func (a Atom) mustBe(k AtomKind) {
	if a.Kind != k {
		panic(fmt.Sprintf("vm: Atom kind mismatch: want %s, have %s", k, a.Kind))
	}
}

// Numeric reports whether the atom is one of the kinds that participate in
// arithmetic and ordering: signed/unsigned integer, float, or character.
func (a Atom) Numeric() bool {
	switch a.Kind {
	case KindSInt, KindUInt, KindFloat, KindChar:
		return true
	default:
		return false
	}
}

// Equal reports structural equality: two atoms are equal only if they share
// a Kind and their values match. This mirrors the reference implementation's
// derived equality on its Atom union: there is no cross-kind numeric
// coercion for EQ, unlike the arithmetic operators (see arith.go).
func (a Atom) Equal(b Atom) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindSInt:
		return a.i == b.i
	case KindUInt:
		return a.u == b.u
	case KindFloat:
		return a.f == b.f
	case KindChar:
		return a.c == b.c
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	default:
		return false
	}
}

func (a Atom) String() string {
	switch a.Kind {
	case KindSInt:
		return fmt.Sprintf("%d", a.i)
	case KindUInt:
		return fmt.Sprintf("%du", a.u)
	case KindFloat:
		return fmt.Sprintf("%g", a.f)
	case KindChar:
		return fmt.Sprintf("#\\%c", a.c)
	case KindBool:
		if a.b {
			return "#t"
		}
		return "#f"
	case KindString:
		return fmt.Sprintf("%q", a.s)
	default:
		return "<bad atom>"
	}
}

// CellKind selects which field of a Cell is meaningful.
type CellKind uint8

// The closed set of cell variants. A register never holds a bare Atom or
// a bare Inst: every value pushed on S, E, C, or D is wrapped in a Cell.
const (
	KindAtomCell CellKind = iota
	KindListCell
	KindInstCell
)

// Cell is the unit of storage in every VM register: an atom, a list, or a
// single instruction (opcode). Exactly one field is meaningful, selected by
// Kind.
type Cell struct {
	Kind CellKind
	atom Atom
	list List
	inst Inst
}

// AtomCell wraps an Atom as a Cell.
func AtomCell(a Atom) Cell { return Cell{Kind: KindAtomCell, atom: a} }

// ListCell wraps a List as a Cell.
func ListCell(l List) Cell { return Cell{Kind: KindListCell, list: l} }

// InstCell wraps an opcode as a Cell.
func InstCell(op Inst) Cell { return Cell{Kind: KindInstCell, inst: op} }

// Atom returns the wrapped Atom. It panics if Kind is not KindAtomCell.
func (c Cell) Atom() Atom {
	if c.Kind != KindAtomCell {
		panic(fmt.Sprintf("vm: Cell kind mismatch: want atom, have %v", c.Kind))
	}
	return c.atom
}

// List returns the wrapped List. It panics if Kind is not KindListCell.
func (c Cell) List() List {
	if c.Kind != KindListCell {
		panic(fmt.Sprintf("vm: Cell kind mismatch: want list, have %v", c.Kind))
	}
	return c.list
}

// Inst returns the wrapped opcode. It panics if Kind is not KindInstCell.
func (c Cell) Inst() Inst {
	if c.Kind != KindInstCell {
		panic(fmt.Sprintf("vm: Cell kind mismatch: want inst, have %v", c.Kind))
	}
	return c.inst
}

// IsAtom, IsList and IsInst report the Cell's variant.
func (c Cell) IsAtom() bool { return c.Kind == KindAtomCell }
func (c Cell) IsList() bool { return c.Kind == KindListCell }
func (c Cell) IsInst() bool { return c.Kind == KindInstCell }

// Equal reports structural equality between two cells: same variant, and
// equal payload (atoms compared with Atom.Equal, lists compared recursively
// by List.Equal, instructions compared by value).
func (c Cell) Equal(o Cell) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case KindAtomCell:
		return c.atom.Equal(o.atom)
	case KindListCell:
		return c.list.Equal(o.list)
	case KindInstCell:
		return c.inst == o.inst
	default:
		return false
	}
}

func (c Cell) String() string {
	switch c.Kind {
	case KindAtomCell:
		return c.atom.String()
	case KindListCell:
		return c.list.String()
	case KindInstCell:
		return c.inst.String()
	default:
		return "<bad cell>"
	}
}

// True is the canonical true cell: a one-element list containing the
// integer atom 1 (see §4.3 of the specification: truth encoding).
func True() Cell { return ListCell(Empty().Push(AtomCell(SInt(1)))) }

// False is the canonical false cell: the empty list.
func False() Cell { return ListCell(Empty()) }

// BoolCell converts a Go bool to the canonical True/False cell encoding.
func BoolCell(v bool) Cell {
	if v {
		return True()
	}
	return False()
}

// Truthy reports whether a cell is "true" under Scheme truthiness: any
// non-empty list is true; the empty list is the sole false value. SEL relies
// on this exact rule (§4.3, §4.5).
func Truthy(c Cell) bool {
	return !(c.Kind == KindListCell && c.list.IsNil())
}
