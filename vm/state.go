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

// State is the four-register SECD machine: Stack, Environment, Control,
// and Dump. The zero value is a machine with every register Nil; NewState
// loads a compiled program onto C.
type State struct {
	S List
	E List
	C List
	D List
}

// NewState returns a fresh machine with C set to program and S, E, D empty.
func NewState(program List) State {
	return State{C: program}
}

// Halted reports whether the control register is empty, the driver's
// stopping condition (§4.7).
func (s State) Halted() bool {
	return s.C.IsNil()
}

// Step consumes the next instruction (and any inline operands it takes
// from C) and returns the resulting state. It never mutates s: every
// returned register is either s's own register, unchanged, or a freshly
// built list sharing s's tails — except for the one documented exception
// in List.setHead, used by RAP to realize the letrec back-edge described
// in §9 of the specification.
func (s State) Step() (State, error) {
	instCell, c1, ok := s.C.Pop()
	if !ok {
		return s, nil
	}
	if !instCell.IsInst() {
		return State{}, &MalformedInstruction{Detail: "expected an instruction cell on C, found a value"}
	}
	op := instCell.Inst()

	switch op {
	case NIL:
		return State{S: s.S.Push(ListCell(Empty())), E: s.E, C: c1, D: s.D}, nil

	case LDC:
		atomCell, c2, err := popCell(c1, LDC, "C")
		if err != nil {
			return State{}, err
		}
		return State{S: s.S.Push(atomCell), E: s.E, C: c2, D: s.D}, nil

	case LD:
		return s.stepLD(c1)

	case LDF:
		bodyCell, c2, err := popCell(c1, LDF, "C")
		if err != nil {
			return State{}, err
		}
		if !bodyCell.IsList() {
			return State{}, &TypeError{Op: LDF, Operands: []Cell{bodyCell}}
		}
		closure := ListOf(bodyCell, ListCell(s.E))
		return State{S: s.S.Push(ListCell(closure)), E: s.E, C: c2, D: s.D}, nil

	case AP:
		return s.stepAP(c1)

	case RAP:
		return s.stepRAP(c1)

	case RET:
		return s.stepRET()

	case DUM:
		return State{S: s.S, E: s.E.Push(ListCell(Empty())), C: c1, D: s.D}, nil

	case JOIN:
		savedC, d1, err := popCell(s.D, JOIN, "D")
		if err != nil {
			return State{}, err
		}
		if !savedC.IsList() {
			return State{}, &TypeError{Op: JOIN, Operands: []Cell{savedC}}
		}
		return State{S: s.S, E: s.E, C: savedC.List(), D: d1}, nil

	case SEL:
		return s.stepSEL(c1)

	case ADD, SUB, MUL, DIV, MOD:
		return s.stepArith(op, c1)

	case FDIV:
		return s.stepFDiv(c1)

	case EQ:
		aCell, s1, err := popCell(s.S, EQ, "S")
		if err != nil {
			return State{}, err
		}
		bCell, s2, err := popCell(s1, EQ, "S")
		if err != nil {
			return State{}, err
		}
		return State{S: s2.Push(BoolCell(aCell.Equal(bCell))), E: s.E, C: c1, D: s.D}, nil

	case GT, GTE, LT, LTE:
		return s.stepCompare(op, c1)

	case ATOM:
		xCell, s1, err := popCell(s.S, ATOM, "S")
		if err != nil {
			return State{}, err
		}
		return State{S: s1.Push(BoolCell(xCell.IsAtom())), E: s.E, C: c1, D: s.D}, nil

	case CAR:
		listCell, s1, err := popCell(s.S, CAR, "S")
		if err != nil {
			return State{}, err
		}
		if !listCell.IsList() {
			return State{}, &TypeError{Op: CAR, Operands: []Cell{listCell}}
		}
		head, _, ok := listCell.List().Pop()
		if !ok {
			return State{}, &TypeError{Op: CAR, Operands: []Cell{listCell}}
		}
		return State{S: s1.Push(head), E: s.E, C: c1, D: s.D}, nil

	case CDR:
		listCell, s1, err := popCell(s.S, CDR, "S")
		if err != nil {
			return State{}, err
		}
		if !listCell.IsList() {
			return State{}, &TypeError{Op: CDR, Operands: []Cell{listCell}}
		}
		_, tail, ok := listCell.List().Pop()
		if !ok {
			return State{}, &TypeError{Op: CDR, Operands: []Cell{listCell}}
		}
		return State{S: s1.Push(ListCell(tail)), E: s.E, C: c1, D: s.D}, nil

	case CONS:
		xCell, s1, err := popCell(s.S, CONS, "S")
		if err != nil {
			return State{}, err
		}
		listCell, s2, err := popCell(s1, CONS, "S")
		if err != nil {
			return State{}, err
		}
		if !listCell.IsList() {
			return State{}, &TypeError{Op: CONS, Operands: []Cell{listCell}}
		}
		return State{S: s2.Push(ListCell(listCell.List().Push(xCell))), E: s.E, C: c1, D: s.D}, nil

	default:
		return State{}, &MalformedInstruction{Op: op, Detail: "unknown opcode"}
	}
}

func (s State) stepLD(c1 List) (State, error) {
	pairCell, c2, err := popCell(c1, LD, "C")
	if err != nil {
		return State{}, err
	}
	if !pairCell.IsList() {
		return State{}, &MalformedInstruction{Op: LD, Detail: "operand is not a (level pos) list"}
	}
	levelCell, rest, ok := pairCell.List().Pop()
	if !ok {
		return State{}, &MalformedInstruction{Op: LD, Detail: "missing level"}
	}
	posCell, tail, ok := rest.Pop()
	if !ok {
		return State{}, &MalformedInstruction{Op: LD, Detail: "missing pos"}
	}
	if !tail.IsNil() {
		return State{}, &MalformedInstruction{Op: LD, Detail: "operand has more than two elements"}
	}
	if !levelCell.IsAtom() || levelCell.Atom().Kind != KindSInt ||
		!posCell.IsAtom() || posCell.Atom().Kind != KindSInt {
		return State{}, &MalformedInstruction{Op: LD, Detail: "level and pos must be signed integers"}
	}
	level := int(levelCell.Atom().SIntValue())
	pos := int(posCell.Atom().SIntValue())

	frameCell, ok := s.E.Index(level)
	if !ok {
		return State{}, &IndexOutOfRangeError{Level: level, Pos: pos}
	}
	if !frameCell.IsList() {
		return State{}, &TypeError{Op: LD, Operands: []Cell{frameCell}}
	}
	valCell, ok := frameCell.List().Index(pos)
	if !ok {
		return State{}, &IndexOutOfRangeError{Level: level, Pos: pos}
	}
	return State{S: s.S.Push(valCell), E: s.E, C: c2, D: s.D}, nil
}

// decomposeClosure splits a closure cell, as built by LDF, into its body
// instruction list and its captured environment.
func decomposeClosure(op Inst, c Cell) (body List, env List, err error) {
	if !c.IsList() {
		return List{}, List{}, &TypeError{Op: op, Operands: []Cell{c}}
	}
	bodyCell, rest, ok := c.List().Pop()
	if !ok {
		return List{}, List{}, &MalformedInstruction{Op: op, Detail: "closure missing body"}
	}
	envCell, _, ok := rest.Pop()
	if !ok {
		return List{}, List{}, &MalformedInstruction{Op: op, Detail: "closure missing captured environment"}
	}
	if !bodyCell.IsList() || !envCell.IsList() {
		return List{}, List{}, &TypeError{Op: op, Operands: []Cell{bodyCell, envCell}}
	}
	return bodyCell.List(), envCell.List(), nil
}

func (s State) stepAP(c1 List) (State, error) {
	closureCell, s1, err := popCell(s.S, AP, "S")
	if err != nil {
		return State{}, err
	}
	argsCell, s2, err := popCell(s1, AP, "S")
	if err != nil {
		return State{}, err
	}
	if !argsCell.IsList() {
		return State{}, &TypeError{Op: AP, Operands: []Cell{argsCell}}
	}
	body, capturedEnv, err := decomposeClosure(AP, closureCell)
	if err != nil {
		return State{}, err
	}

	newE := capturedEnv.Push(argsCell)
	newD := s.D.Push(ListCell(s2)).Push(ListCell(s.E)).Push(ListCell(c1))
	return State{S: Empty(), E: newE, C: body, D: newD}, nil
}

func (s State) stepRAP(c1 List) (State, error) {
	closureCell, s1, err := popCell(s.S, RAP, "S")
	if err != nil {
		return State{}, err
	}
	argsCell, s2, err := popCell(s1, RAP, "S")
	if err != nil {
		return State{}, err
	}
	if !argsCell.IsList() {
		return State{}, &TypeError{Op: RAP, Operands: []Cell{argsCell}}
	}
	body, _, err := decomposeClosure(RAP, closureCell)
	if err != nil {
		return State{}, err
	}
	if s.E.IsNil() {
		return State{}, &MalformedInstruction{Op: RAP, Detail: "no dummy frame on E; RAP must follow DUM"}
	}
	// Destructively substitute the dummy frame DUM placed at E's head with
	// the now-evaluated argument list. Any closure LDF'd since the DUM
	// captured this same node (via its environment-list pointer) and will
	// observe this substitution on its next LD — the back-edge that makes
	// mutually recursive letrec bindings well-defined (see list.go, §9).
	if !s.E.setHead(argsCell) {
		return State{}, &MalformedInstruction{Op: RAP, Detail: "no dummy frame on E; RAP must follow DUM"}
	}

	newD := s.D.Push(ListCell(s2)).Push(ListCell(s.E)).Push(ListCell(c1))
	return State{S: Empty(), E: s.E, C: body, D: newD}, nil
}

func (s State) stepRET() (State, error) {
	result, sAfter, err := popCell(s.S, RET, "S")
	if err != nil {
		return State{}, err
	}
	_ = sAfter // RET discards whatever else was left on the callee's S

	cCell, d1, err := popCell(s.D, RET, "D")
	if err != nil {
		return State{}, err
	}
	eCell, d2, err := popCell(d1, RET, "D")
	if err != nil {
		return State{}, err
	}
	sCell, d3, err := popCell(d2, RET, "D")
	if err != nil {
		return State{}, err
	}
	if !cCell.IsList() || !eCell.IsList() || !sCell.IsList() {
		return State{}, &MalformedInstruction{Op: RET, Detail: "dump frame has the wrong shape"}
	}
	return State{S: sCell.List().Push(result), E: eCell.List(), C: cCell.List(), D: d3}, nil
}

func (s State) stepSEL(c1 List) (State, error) {
	thenCell, c2, err := popCell(c1, SEL, "C")
	if err != nil {
		return State{}, err
	}
	elseCell, c3, err := popCell(c2, SEL, "C")
	if err != nil {
		return State{}, err
	}
	if !thenCell.IsList() || !elseCell.IsList() {
		return State{}, &TypeError{Op: SEL, Operands: []Cell{thenCell, elseCell}}
	}
	predCell, s1, err := popCell(s.S, SEL, "S")
	if err != nil {
		return State{}, err
	}
	branch := elseCell
	if Truthy(predCell) {
		branch = thenCell
	}
	newD := s.D.Push(ListCell(c3))
	return State{S: s1, E: s.E, C: branch.List(), D: newD}, nil
}

func arithOpFor(op Inst) arithOp {
	switch op {
	case ADD:
		return opAdd
	case SUB:
		return opSub
	case MUL:
		return opMul
	case DIV:
		return opDiv
	case MOD:
		return opMod
	default:
		panic("vm: arithOpFor on non-arithmetic opcode")
	}
}

func (s State) stepArith(op Inst, c1 List) (State, error) {
	a, s1, err := popAtom(s.S, op, "S")
	if err != nil {
		return State{}, err
	}
	b, s2, err := popAtom(s1, op, "S")
	if err != nil {
		return State{}, err
	}
	if !a.Numeric() || !b.Numeric() {
		return State{}, &TypeError{Op: op, Operands: []Cell{AtomCell(a), AtomCell(b)}}
	}
	res, err := Arith(arithOpFor(op), a, b)
	if err != nil {
		return State{}, err
	}
	return State{S: s2.Push(AtomCell(res)), E: s.E, C: c1, D: s.D}, nil
}

func (s State) stepFDiv(c1 List) (State, error) {
	a, s1, err := popAtom(s.S, FDIV, "S")
	if err != nil {
		return State{}, err
	}
	b, s2, err := popAtom(s1, FDIV, "S")
	if err != nil {
		return State{}, err
	}
	if !a.Numeric() || !b.Numeric() {
		return State{}, &TypeError{Op: FDIV, Operands: []Cell{AtomCell(a), AtomCell(b)}}
	}
	return State{S: s2.Push(AtomCell(FDiv(a, b))), E: s.E, C: c1, D: s.D}, nil
}

func (s State) stepCompare(op Inst, c1 List) (State, error) {
	a, s1, err := popAtom(s.S, op, "S")
	if err != nil {
		return State{}, err
	}
	b, s2, err := popAtom(s1, op, "S")
	if err != nil {
		return State{}, err
	}
	if !a.Numeric() || !b.Numeric() {
		return State{}, &TypeError{Op: op, Operands: []Cell{AtomCell(a), AtomCell(b)}}
	}
	cmp := Compare(a, b)
	var result bool
	switch op {
	case GT:
		result = cmp > 0
	case GTE:
		result = cmp >= 0
	case LT:
		result = cmp < 0
	case LTE:
		result = cmp <= 0
	}
	return State{S: s2.Push(BoolCell(result)), E: s.E, C: c1, D: s.D}, nil
}

func popCell(l List, op Inst, register string) (Cell, List, error) {
	c, rest, ok := l.Pop()
	if !ok {
		return Cell{}, List{}, &UnderflowError{Op: op, Register: register}
	}
	return c, rest, nil
}

func popAtom(l List, op Inst, register string) (Atom, List, error) {
	c, rest, err := popCell(l, op, register)
	if err != nil {
		return Atom{}, List{}, err
	}
	if !c.IsAtom() {
		return Atom{}, List{}, &TypeError{Op: op, Operands: []Cell{c}}
	}
	return c.Atom(), rest, nil
}
