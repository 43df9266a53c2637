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
	"fmt"

	"github.com/pkg/errors"
)

// driver holds the tunable knobs applied by Option before a program runs.
// It mirrors the teacher's Instance: unexported fields, built up entirely
// through functional options, never constructed directly by a caller.
type driver struct {
	stepLimit int // 0 means unbounded
}

// Option configures a driver. An Option built from its zero argument (such
// as WithStepLimit(0)) is a no-op, matching the teacher's opt-in convention.
type Option func(*driver) error

// WithStepLimit bounds the number of Step calls RunProgram will execute
// before returning a StepLimitExceeded error, realizing the driver-imposed
// bound described in §5. A limit of 0 (the default) disables the check.
func WithStepLimit(n int) Option {
	return func(d *driver) error {
		if n < 0 {
			return errors.Errorf("vm: negative step limit %d", n)
		}
		d.stepLimit = n
		return nil
	}
}

func newDriver(opts ...Option) (*driver, error) {
	d := &driver{}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, errors.Wrap(err, "vm: applying option")
		}
	}
	return d, nil
}

// RunProgram drives a pre-compiled instruction list to completion and
// returns the result cell at the head of the final stack (§4.7). It skips
// the parser/compiler front end entirely, which is how the unit-level
// scenarios in §8 exercise the VM directly.
//
// Any panic raised by a malformed program (an unexpected type assertion
// deep in Step, for instance) is recovered here and reported as a regular
// error, the way the teacher's Instance.Run recovers internal panics at
// its API boundary rather than letting them escape to the caller.
func RunProgram(program List, opts ...Option) (result Cell, err error) {
	d, err := newDriver(opts...)
	if err != nil {
		return Cell{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("vm: internal error: %v", r)
		}
	}()

	s := NewState(program)
	steps := 0
	for !s.Halted() {
		if d.stepLimit > 0 && steps >= d.stepLimit {
			return Cell{}, errors.WithStack(&StepLimitExceeded{Limit: d.stepLimit})
		}
		s, err = s.Step()
		if err != nil {
			return Cell{}, errors.WithStack(err)
		}
		steps++
	}

	head, ok := s.S.Peek()
	if !ok {
		return Cell{}, errors.New("vm: program halted with an empty stack")
	}
	return head, nil
}

// String renders a State for debugging, one register per line.
func (s State) String() string {
	return fmt.Sprintf("S=%s E=%s C=%s D=%s", s.S, s.E, s.C, s.D)
}
