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

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gitter-badger/seax/compiler"
	"github.com/gitter-badger/seax/compiler/ast"
	"github.com/gitter-badger/seax/internal/config"
	"github.com/gitter-badger/seax/parser"
	"github.com/gitter-badger/seax/vm"
)

var promptStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#10B981"))

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#6366F1", Dark: "#818CF8"})

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(cmd, cfg)
	},
}

// repl holds the state a REPL session carries across fragments: the
// compiler's top-level scope (Session) and the matching live E[0]
// environment frame, kept in lockstep per SPEC_FULL.md §9.5. topFrame's
// element at position i is always the value bound to Session's i'th
// name, so a fragment compiled against the session resolves correctly
// against topFrame without the vm package knowing anything about
// top-level bindings.
type repl struct {
	sessionID uuid.UUID
	log       *config.Logger
	session   *compiler.Session
	topFrame  vm.List
}

func runREPL(cmd *cobra.Command, cfg *config.Config) error {
	r := &repl{
		sessionID: uuid.New(),
		log:       config.NewStderrLogger(cfg),
		session:   compiler.NewSession(),
		topFrame:  vm.Empty(),
	}

	fmt.Println(bannerStyle.Render(fmt.Sprintf("secd repl — session %s", r.sessionID)))
	fmt.Println("one expression per line; (define name expr) binds a top-level name; Ctrl-D to exit")

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print(promptStyle.Render("secd> "))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			r.evalLine(line, cfg.StepLimit)
		}
		fmt.Print(promptStyle.Render("secd> "))
	}
	fmt.Println()
	return scanner.Err()
}

func (r *repl) evalLine(line string, stepLimit int) {
	tree, err := parser.Parse(line)
	if err != nil {
		r.log.Errorf(err)
		fmt.Println(errorStyle.Render(err.Error()))
		return
	}

	if name, expr, ok := asDefine(tree); ok {
		r.define(name, expr, stepLimit)
		return
	}

	program, err := r.session.CompileFragment(tree)
	if err != nil {
		r.log.Errorf(err)
		fmt.Println(errorStyle.Render(err.Error()))
		return
	}
	result, err := driveFragment(program, r.topEnv(), stepLimit)
	if err != nil {
		r.log.Errorf(err)
		fmt.Println(errorStyle.Render(err.Error()))
		return
	}
	fmt.Println(resultStyle.Render(result.String()))
}

// define evaluates expr against the bindings defined so far, then
// extends topFrame and the session's scope with name, in that order —
// so a define's right-hand side cannot see its own name (no implicit
// letrec at top level; use a compiled letrec form for that).
func (r *repl) define(name string, expr ast.Node, stepLimit int) {
	program, err := r.session.CompileFragment(expr)
	if err != nil {
		r.log.Errorf(err)
		fmt.Println(errorStyle.Render(err.Error()))
		return
	}
	result, err := driveFragment(program, r.topEnv(), stepLimit)
	if err != nil {
		r.log.Errorf(err)
		fmt.Println(errorStyle.Render(err.Error()))
		return
	}
	r.topFrame = r.topFrame.Push(result)
	r.session.Define(name)
	fmt.Println(resultStyle.Render(name + " = " + result.String()))
}

// topEnv wraps the session's single top-level frame as the one-frame E
// register every compiled fragment addresses at level 0.
func (r *repl) topEnv() vm.List {
	return vm.ListOf(vm.ListCell(r.topFrame))
}

// asDefine recognizes the REPL-only "(define name expr)" top-level form
// (SPEC_FULL.md §9.5); this is never a valid form elsewhere, including
// as a sub-expression, since the compiler has no case for "define".
func asDefine(n ast.Node) (name string, expr ast.Node, ok bool) {
	sexpr, isSExpr := n.(ast.SExpr)
	if !isSExpr || sexpr.Operator.Ident != "define" || len(sexpr.Operands) != 2 {
		return "", nil, false
	}
	nameNode, isName := sexpr.Operands[0].(ast.Name)
	if !isName {
		return "", nil, false
	}
	return nameNode.Ident, sexpr.Operands[1], true
}

// driveFragment runs program against a caller-supplied initial
// environment, the same loop RunProgram drives except for that one
// difference — the REPL needs a non-empty E[0] so fragments can see
// earlier top-level defines, which RunProgram's fixed NewState does not
// support.
func driveFragment(program vm.List, env vm.List, stepLimit int) (result vm.Cell, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("vm: internal error: %v", r)
		}
	}()

	s := vm.State{C: program, E: env}
	steps := 0
	for !s.Halted() {
		if stepLimit > 0 && steps >= stepLimit {
			return vm.Cell{}, errors.WithStack(&vm.StepLimitExceeded{Limit: stepLimit})
		}
		s, err = s.Step()
		if err != nil {
			return vm.Cell{}, errors.WithStack(err)
		}
		steps++
	}

	head, ok := s.S.Peek()
	if !ok {
		return vm.Cell{}, errors.New("vm: program halted with an empty stack")
	}
	return head, nil
}
