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

import "math"

// numKind classifies an operand for the purposes of coercion: integer
// (signed or unsigned, after a character operand has been lowered to its
// code point), or float. Two operands sharing a numKind and a sign-ness
// keep their original Atom.Kind; any other pairing promotes to float (see
// §4.2: mixed int/float promotes to float, mixed signed/unsigned promotes
// to float to avoid sign ambiguity).
type numKind uint8

const (
	numSInt numKind = iota
	numUInt
	numFloat
)

// normalize lowers a character atom to its code point as a signed integer,
// per §4.2 ("character operands coerce to their underlying code-point
// integer before promotion"), and leaves every other numeric atom as-is.
func normalize(a Atom) Atom {
	if a.Kind == KindChar {
		return SInt(int64(a.CharValue()))
	}
	return a
}

func kindOf(a Atom) numKind {
	switch a.Kind {
	case KindUInt:
		return numUInt
	case KindFloat:
		return numFloat
	default:
		return numSInt
	}
}

// asFloat widens any numeric atom to float64 for a promoted operation.
func asFloat(a Atom) float64 {
	switch a.Kind {
	case KindSInt:
		return float64(a.i)
	case KindUInt:
		return float64(a.u)
	case KindFloat:
		return a.f
	default:
		panic("vm: asFloat on non-numeric atom")
	}
}

func asSInt(a Atom) int64 {
	switch a.Kind {
	case KindSInt:
		return a.i
	case KindUInt:
		return int64(a.u)
	default:
		panic("vm: asSInt on non-integer atom")
	}
}

// arithOp is one of the five binary operators that share a coercion table:
// ADD, SUB, MUL, DIV, MOD. FDIV has its own rule (always float, see §4.6)
// and is implemented separately below.
type arithOp uint8

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
	opMod
)

// Arith applies op to a and b (a is the left, earlier-popped operand; b is
// the right operand — see §4.2's "first pop is the left operand"),
// following the coercion rule: same tag preserves tag, any int/float or
// signed/unsigned mismatch promotes both to float. Division and modulo by
// a zero integer raise ArithmeticError; float division follows IEEE-754.
// Both a and b must be Numeric(); the step function checks that before
// calling Arith (see state.go).
func Arith(op arithOp, a, b Atom) (Atom, error) {
	na, nb := normalize(a), normalize(b)
	ka, kb := kindOf(na), kindOf(nb)

	if ka == kb && ka != numFloat {
		return intArith(op, na, nb, ka)
	}
	if ka == numFloat && kb == numFloat {
		return floatArith(op, asFloat(na), asFloat(nb))
	}
	// Mixed int/float, or mixed signed/unsigned: promote to float.
	return floatArith(op, asFloat(na), asFloat(nb))
}

func intArith(op arithOp, a, b Atom, k numKind) (Atom, error) {
	switch k {
	case numUInt:
		x, y := a.u, b.u
		switch op {
		case opAdd:
			return UInt(x + y), nil
		case opSub:
			return UInt(x - y), nil
		case opMul:
			return UInt(x * y), nil
		case opDiv:
			if y == 0 {
				return Atom{}, &ArithmeticError{Op: "DIV"}
			}
			return UInt(x / y), nil
		case opMod:
			if y == 0 {
				return Atom{}, &ArithmeticError{Op: "MOD"}
			}
			return UInt(x % y), nil
		}
	default: // numSInt
		x, y := asSInt(a), asSInt(b)
		switch op {
		case opAdd:
			return SInt(x + y), nil
		case opSub:
			return SInt(x - y), nil
		case opMul:
			return SInt(x * y), nil
		case opDiv:
			if y == 0 {
				return Atom{}, &ArithmeticError{Op: "DIV"}
			}
			return SInt(x / y), nil // Go's / truncates toward zero
		case opMod:
			if y == 0 {
				return Atom{}, &ArithmeticError{Op: "MOD"}
			}
			return SInt(x % y), nil // Go's % follows sign of dividend
		}
	}
	panic("vm: unreachable arithOp")
}

func floatArith(op arithOp, x, y float64) (Atom, error) {
	switch op {
	case opAdd:
		return Float(x + y), nil
	case opSub:
		return Float(x - y), nil
	case opMul:
		return Float(x * y), nil
	case opDiv, opMod:
		// §4.6: DIV/MOD promoted to float still follow IEEE-754 (no trap);
		// only the integer path raises ArithmeticError.
		if op == opDiv {
			return Float(x / y), nil
		}
		return Float(modFloat(x, y)), nil
	}
	panic("vm: unreachable arithOp")
}

func modFloat(x, y float64) float64 {
	return x - math.Trunc(x/y)*y
}

// FDiv implements FDIV: always float, regardless of operand tags (§4.6).
func FDiv(a, b Atom) Atom {
	return Float(asFloat(normalize(a)) / asFloat(normalize(b)))
}

// Compare orders a and b using the same coercion rule as Arith, returning
// -1, 0, or 1. Used by GT/GTE/LT/LTE, which the spec groups with the
// arithmetic operators rather than with EQ (EQ never coerces, see
// Atom.Equal in cell.go).
func Compare(a, b Atom) int {
	na, nb := normalize(a), normalize(b)
	ka, kb := kindOf(na), kindOf(nb)

	if ka == kb && ka != numFloat {
		if ka == numUInt {
			switch {
			case na.u < nb.u:
				return -1
			case na.u > nb.u:
				return 1
			default:
				return 0
			}
		}
		x, y := asSInt(na), asSInt(nb)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	}
	x, y := asFloat(na), asFloat(nb)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
