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

import "strings"

// node is one cons cell: a head Cell and a tail List. node is never mutated
// after construction, so any number of Lists may share a tail safely.
type node struct {
	head Cell
	tail List
}

// List is an immutable singly-linked cons list of Cells. The zero value is
// Nil, the empty list. Lists are used both as the general list/pair data
// structure of the language and, in LIFO fashion, as every one of the VM's
// four registers (see State in state.go).
type List struct {
	n *node
}

// Empty returns Nil, the empty list.
func Empty() List { return List{} }

// IsNil reports whether the list is empty.
func (l List) IsNil() bool { return l.n == nil }

// Push returns a new list with c at the head and l as the tail. l is
// unmodified; the new list and l share l's structure.
func (l List) Push(c Cell) List {
	return List{n: &node{head: c, tail: l}}
}

// Pop returns the head cell and the tail list, and true, or the zero Cell,
// Nil, and false if l is empty.
func (l List) Pop() (Cell, List, bool) {
	if l.n == nil {
		return Cell{}, List{}, false
	}
	return l.n.head, l.n.tail, true
}

// Peek returns the head cell and true, or the zero Cell and false if l is
// empty, without consuming it.
func (l List) Peek() (Cell, bool) {
	if l.n == nil {
		return Cell{}, false
	}
	return l.n.head, true
}

// Len returns the number of elements in l.
func (l List) Len() int {
	n := 0
	for cur := l; cur.n != nil; cur = cur.n.tail {
		n++
	}
	return n
}

// Index returns the i-th element (zero-based) and true, or the zero Cell
// and false if i is out of range. Used by LD to address an environment
// frame (see state.go) and by the environment frame list itself.
func (l List) Index(i int) (Cell, bool) {
	if i < 0 {
		return Cell{}, false
	}
	cur := l
	for ; i > 0 && cur.n != nil; i-- {
		cur = cur.n.tail
	}
	if cur.n == nil {
		return Cell{}, false
	}
	return cur.n.head, true
}

// setHead overwrites the head cell of l's own node in place and reports
// whether l was non-nil. This is the one deliberate exception to "a node is
// never mutated after construction": it exists solely so RAP can realize the
// letrec back-edge described in spec.md's design notes. DUM pushes a dummy
// frame onto E; any LDF executed before the matching RAP captures E (not a
// copy of its head, but the List value itself, which shares this node
// pointer); RAP then calls setHead on the current E to substitute the real
// argument list for the dummy, and every closure that captured E earlier
// observes the substitution on its next lookup, because it is reading
// through the same node. No other opcode calls this method.
func (l List) setHead(c Cell) bool {
	if l.n == nil {
		return false
	}
	l.n.head = c
	return true
}

// Equal reports structural equality: same length, with element-wise
// Cell.Equal at each position.
func (l List) Equal(o List) bool {
	a, b := l, o
	for {
		ah, at, aOk := a.Pop()
		bh, bt, bOk := b.Pop()
		if aOk != bOk {
			return false
		}
		if !aOk {
			return true
		}
		if !ah.Equal(bh) {
			return false
		}
		a, b = at, bt
	}
}

// ListOf builds the cons chain equivalent to the given sequence of cells,
// i.e. ListOf(a, b, c) is the same list as Empty().Push(c).Push(b).Push(a).
// This is the convenience constructor required by §4.1 for compiler output
// and for tests.
func ListOf(cells ...Cell) List {
	l := Empty()
	for i := len(cells) - 1; i >= 0; i-- {
		l = l.Push(cells[i])
	}
	return l
}

// Slice returns the elements of l as a Go slice, head first.
func (l List) Slice() []Cell {
	out := make([]Cell, 0, l.Len())
	for cur := l; !cur.IsNil(); {
		h, t, _ := cur.Pop()
		out = append(out, h)
		cur = t
	}
	return out
}

func (l List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for cur, i := l, 0; !cur.IsNil(); i++ {
		h, t, _ := cur.Pop()
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(h.String())
		cur = t
	}
	b.WriteByte(')')
	return b.String()
}
