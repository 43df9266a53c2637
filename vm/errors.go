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

// The error kinds of §7. Each is a distinct exported type so a caller can
// type-switch or errors.As on the fault that stopped the machine. The
// driver wraps each with github.com/pkg/errors at the Run/RunProgram
// boundary to attach a stack trace (see driver.go); step itself just
// raises the bare value.

// ParseError reports malformed source text.
type ParseError struct {
	Position int
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: expected %s", e.Position, e.Expected)
}

// CompileError reports an AST node the compiler cannot lower.
type CompileError struct {
	Form string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error: cannot lower %s", e.Form)
}

// TypeError reports an opcode that received incompatible cell variants.
type TypeError struct {
	Op       Inst
	Operands []Cell
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: %s received incompatible operand(s) %v", e.Op, e.Operands)
}

// UnderflowError reports an opcode that tried to pop an empty register.
type UnderflowError struct {
	Op       Inst
	Register string
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("underflow: %s popped empty register %s", e.Op, e.Register)
}

// MalformedInstruction reports an inline operand with the wrong shape,
// e.g. an LD pair that is not exactly (SInt, SInt).
type MalformedInstruction struct {
	Op     Inst
	Detail string
}

func (e *MalformedInstruction) Error() string {
	return fmt.Sprintf("malformed instruction: %s %s", e.Op, e.Detail)
}

// IndexOutOfRangeError reports an LD that addressed beyond the current
// environment, at the given (level, pos).
type IndexOutOfRangeError struct {
	Level int
	Pos   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index out of range: E[%d][%d]", e.Level, e.Pos)
}

// ArithmeticError reports integer division or modulo by zero.
type ArithmeticError struct {
	Op string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic error: %s by zero", e.Op)
}

// StepLimitExceeded reports that the driver's configured step budget
// (see WithStepLimit in driver.go) was exhausted before C emptied.
type StepLimitExceeded struct {
	Limit int
}

func (e *StepLimitExceeded) Error() string {
	return fmt.Sprintf("step limit of %d exceeded", e.Limit)
}
