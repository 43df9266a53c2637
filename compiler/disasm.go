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
	"fmt"
	"strings"

	"github.com/gitter-badger/seax/vm"
)

// Disassemble renders a compiled instruction list back to a readable
// opcode listing: one mnemonic per line, each of its inline operands on
// its own indented line below it, with nested LDF bodies and SEL branches
// indented further. This is the compiler's
// analogue of the teacher's asm.Disassemble: a debugging and testing aid,
// not part of the compiled program's runtime semantics.
func Disassemble(instructions vm.List) string {
	var b strings.Builder
	disassemble(instructions, 0, &b)
	return b.String()
}

func disassemble(instructions vm.List, depth int, b *strings.Builder) {
	indent := strings.Repeat("  ", depth)
	cur := instructions
	for {
		cell, rest, ok := cur.Pop()
		if !ok {
			return
		}
		if !cell.IsInst() {
			fmt.Fprintf(b, "%s; stray operand %s\n", indent, cell)
			cur = rest
			continue
		}
		op := cell.Inst()
		fmt.Fprintf(b, "%s%s\n", indent, op)
		cur = rest
		for i := 0; i < vm.OperandArity(op); i++ {
			operand, next, ok := cur.Pop()
			if !ok {
				fmt.Fprintf(b, "%s  ; missing operand\n", indent)
				return
			}
			cur = next
			switch {
			case op == vm.LDF && operand.IsList():
				fmt.Fprintf(b, "%s  body:\n", indent)
				disassemble(operand.List(), depth+2, b)
			case op == vm.SEL && operand.IsList():
				label := "then"
				if i == 1 {
					label = "else"
				}
				fmt.Fprintf(b, "%s  %s:\n", indent, label)
				disassemble(operand.List(), depth+2, b)
			default:
				fmt.Fprintf(b, "%s  %s\n", indent, operand)
			}
		}
	}
}
