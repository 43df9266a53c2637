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

// Package vm implements the SECD virtual machine: a four-register
// (Stack, Environment, Control, Dump) abstract machine for a small
// Scheme-like language.
//
// The package is split across a handful of files:
//
//	cell.go     Atom and Cell, the tagged values every register holds
//	list.go     List, the immutable singly-linked cons structure
//	opcodes.go  the instruction set (Inst) and its operand arities
//	arith.go    atom arithmetic and numeric coercion
//	errors.go   the typed error kinds raised by a faulting instruction
//	state.go    State and the step function
//	driver.go   RunProgram and the Option-based driver
//
// Step takes a State by value and returns a new State, sharing list tails
// with the one it was given. The one in-place mutation is RAP's
// substitution of the dummy frame at the head of E (see List.setHead).
// This keeps the driver loop in driver.go trivial: call step until
// Control is empty.
//
// For background on the four-register design, see Peter J. Landin's
// SECD machine and the approach taken by the Seax Scheme project, which
// this implementation is a Go rendition of.
package vm
