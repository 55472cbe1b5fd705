// Copyright (C) 2019-2023 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

package compiler

import (
	"fmt"
	"strings"

	"github.com/michaeldiamant/pyteal/ir"
	"github.com/michaeldiamant/pyteal/serr"
)

// body is one linearized instruction stream: the main program or a single
// subroutine. Bodies never share blocks.
type body struct {
	order    []ir.BlockID
	pos      map[ir.BlockID]int
	sub      ir.SubID // NoSub for the main body
	name     string
	terminal string // op ending a fallthrough off the body: return or retsub
}

// flattener turns the block graph into assembly lines. Block visit order is
// a deterministic depth-first walk preferring the false branch, so the false
// arm of every conditional becomes the fallthrough path. It is also the
// late-bound Resolver for slot indices and subroutine labels.
type flattener struct {
	b      *build
	bodies []*body
	labels map[ir.BlockID]string
	slots  map[*ir.ScratchSlot]uint64
	lines  []string
}

// SlotIndex implements ir.Resolver. Slots are assigned before any line is
// rendered, so lookup cannot miss.
func (f *flattener) SlotIndex(slot *ir.ScratchSlot) uint64 {
	return f.slots[slot]
}

// SubLabel implements ir.Resolver.
func (f *flattener) SubLabel(sub ir.SubID) string {
	return fmt.Sprintf("sub%d", sub)
}

// flatten renders the whole program: pragma line, main body, then every
// subroutine body in id order.
func flatten(b *build, mainEntry ir.BlockID) (string, error) {
	f := &flattener{
		b:      b,
		labels: make(map[ir.BlockID]string),
		slots:  make(map[*ir.ScratchSlot]uint64),
	}
	f.bodies = append(f.bodies, &body{
		order:    f.dfs(mainEntry),
		sub:      ir.NoSub,
		terminal: "return",
	})
	for id, info := range b.subs.all() {
		f.bodies = append(f.bodies, &body{
			order:    f.dfs(info.entry),
			sub:      ir.SubID(id),
			name:     info.name,
			terminal: "retsub",
		})
	}
	for _, bd := range f.bodies {
		bd.pos = make(map[ir.BlockID]int, len(bd.order))
		for i, id := range bd.order {
			bd.pos[id] = i
		}
	}
	if err := f.assignSlots(); err != nil {
		return "", err
	}
	f.assignLabels()

	f.lines = append(f.lines, fmt.Sprintf("#pragma version %d", b.version))
	for i, bd := range f.bodies {
		f.emitBody(bd, i == len(f.bodies)-1)
	}
	return strings.Join(f.lines, "\n"), nil
}

// dfs returns the deterministic emission order of one body: depth-first from
// the entry, visiting the false branch before the true branch so it can fall
// through.
func (f *flattener) dfs(entry ir.BlockID) []ir.BlockID {
	var order []ir.BlockID
	visited := make(map[ir.BlockID]bool)
	stack := []ir.BlockID{entry}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == ir.NoBlock || visited[id] {
			continue
		}
		visited[id] = true
		order = append(order, id)
		blk := f.b.graph.Block(id)
		if blk.LastOpDeadens() {
			// Control never falls out of this block; its successor is only
			// reachable through other paths, if at all.
			continue
		}
		if blk.Conditional {
			stack = append(stack, blk.TrueTo, blk.FalseTo)
		} else {
			stack = append(stack, blk.Next)
		}
	}
	return order
}

// emptyTerminal reports whether a jump to id can be replaced by the body's
// terminal op: the target holds no ops and simply ends the body.
func (f *flattener) emptyTerminal(id ir.BlockID) bool {
	blk := f.b.graph.Block(id)
	return !blk.Conditional && blk.Next == ir.NoBlock && len(blk.Ops) == 0
}

// following returns the block emitted after id within its body, or NoBlock.
func (bd *body) following(id ir.BlockID) ir.BlockID {
	i, ok := bd.pos[id]
	if !ok || i+1 >= len(bd.order) {
		return ir.NoBlock
	}
	return bd.order[i+1]
}

// assignLabels decides which blocks are jump targets. The true branch of a
// conditional always needs a label; a simple successor needs one only when
// it neither follows in emission order nor qualifies for terminal-op
// replacement. Subroutine entries are labeled unconditionally as callsub
// targets.
func (f *flattener) assignLabels() {
	for _, bd := range f.bodies {
		name := func(id ir.BlockID) string {
			if bd.sub == ir.NoSub {
				return fmt.Sprintf("main_l%d", bd.pos[id])
			}
			return fmt.Sprintf("sub%d_l%d", bd.sub, bd.pos[id])
		}
		mark := func(id ir.BlockID) {
			if _, ok := f.labels[id]; !ok {
				f.labels[id] = name(id)
			}
		}
		if bd.sub != ir.NoSub {
			f.labels[bd.order[0]] = f.SubLabel(bd.sub)
		}
		for _, id := range bd.order {
			blk := f.b.graph.Block(id)
			if blk.LastOpDeadens() {
				continue
			}
			if blk.Conditional {
				mark(blk.TrueTo)
				if blk.FalseTo != bd.following(id) && !f.emptyTerminal(blk.FalseTo) {
					mark(blk.FalseTo)
				}
				continue
			}
			if blk.Next != ir.NoBlock && blk.Next != bd.following(id) && !f.emptyTerminal(blk.Next) {
				mark(blk.Next)
			}
		}
	}
}

// assignSlots binds every referenced scratch slot to a concrete index.
// Reserved slots claim their requested index first; the rest receive the
// lowest free index in first-appearance order.
func (f *flattener) assignSlots() error {
	var firstUse []*ir.ScratchSlot
	seen := make(map[*ir.ScratchSlot]bool)
	for _, bd := range f.bodies {
		for _, id := range bd.order {
			for _, op := range f.b.graph.Block(id).Ops {
				if op.Slot != nil && !seen[op.Slot] {
					seen[op.Slot] = true
					firstUse = append(firstUse, op.Slot)
				}
			}
		}
	}
	numSlots := uint64(f.b.params.NumSlots)
	if uint64(len(firstUse)) > numSlots {
		return serr.InputError("scratch slots exhausted",
			"used", len(firstUse), "available", numSlots)
	}
	taken := make(map[uint64]bool, len(firstUse))
	for _, slot := range firstUse {
		index, reserved := slot.ReservedIndex()
		if !reserved {
			continue
		}
		if index >= numSlots {
			return serr.InputError("reserved slot index out of range",
				"slot", slot.String(), "numSlots", numSlots)
		}
		if taken[index] {
			return serr.InputError("reserved slot index collision",
				"slot", slot.String(), "index", index)
		}
		taken[index] = true
		f.slots[slot] = index
	}
	next := uint64(0)
	for _, slot := range firstUse {
		if _, reserved := slot.ReservedIndex(); reserved {
			continue
		}
		for taken[next] {
			next++
		}
		if next >= numSlots {
			return serr.InputError("scratch slots exhausted",
				"used", len(firstUse), "available", numSlots)
		}
		taken[next] = true
		f.slots[slot] = next
	}
	return nil
}

// emitBody renders one body's blocks in order. The subroutine entry label
// carries the subroutine name as a comment; falling off a terminal block
// that is not the program's final line emits the body's terminal op so
// control never bleeds into the next body.
func (f *flattener) emitBody(bd *body, lastBody bool) {
	for i, id := range bd.order {
		blk := f.b.graph.Block(id)
		if label, ok := f.labels[id]; ok {
			if bd.sub != ir.NoSub && i == 0 && bd.name != "" {
				f.lines = append(f.lines, label+": // "+bd.name)
			} else {
				f.lines = append(f.lines, label+":")
			}
		}
		for _, op := range blk.Ops {
			f.lines = append(f.lines, op.Teal(f))
		}
		if blk.LastOpDeadens() {
			continue
		}
		lastBlock := i == len(bd.order)-1
		switch {
		case blk.Conditional:
			f.lines = append(f.lines, "bnz "+f.labels[blk.TrueTo])
			if blk.FalseTo == bd.following(id) {
				// fallthrough
			} else if f.emptyTerminal(blk.FalseTo) {
				f.lines = append(f.lines, bd.terminal)
			} else {
				f.lines = append(f.lines, "b "+f.labels[blk.FalseTo])
			}
		case blk.Next != ir.NoBlock:
			if blk.Next == bd.following(id) {
				// fallthrough
			} else if f.emptyTerminal(blk.Next) {
				f.lines = append(f.lines, bd.terminal)
			} else {
				f.lines = append(f.lines, "b "+f.labels[blk.Next])
			}
		default:
			// Terminal block. The final block of the final body may simply
			// end, leaving the program result on the stack.
			if !(lastBody && lastBlock) {
				f.lines = append(f.lines, bd.terminal)
			}
		}
	}
}
