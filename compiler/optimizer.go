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
	"github.com/michaeldiamant/pyteal/ir"
)

// maxPeepholeRounds bounds the fixed-point iteration. Each round removes at
// least one op pair, so the bound is only a safety net.
const maxPeepholeRounds = 10

// normalize merges straight-line block chains: a simple block absorbs its
// sole successor when that successor has exactly one predecessor and is not
// an entry point. Lowering emits small blocks per node; merging them lets
// the peephole pass see whole instruction runs and keeps the emitted
// assembly free of pointless jumps.
func (b *build) normalize(protected map[ir.BlockID]bool) {
	for changed := true; changed; {
		changed = false
		counts := b.predCounts()
		for id := ir.BlockID(0); int(id) < b.graph.Len(); id++ {
			blk := b.graph.Block(id)
			for !blk.Conditional && blk.Next != ir.NoBlock {
				next := b.graph.Block(blk.Next)
				if next.ID == blk.ID || protected[next.ID] || counts[next.ID] != 1 {
					break
				}
				blk.Ops = append(blk.Ops, next.Ops...)
				blk.Conditional = next.Conditional
				blk.Next = next.Next
				blk.TrueTo = next.TrueTo
				blk.FalseTo = next.FalseTo
				next.Ops = nil
				next.Conditional = false
				next.Next = ir.NoBlock
				next.TrueTo = ir.NoBlock
				next.FalseTo = ir.NoBlock
				changed = true
			}
		}
	}
}

func (b *build) predCounts() []int {
	counts := make([]int, b.graph.Len())
	for id := ir.BlockID(0); int(id) < b.graph.Len(); id++ {
		for _, succ := range b.graph.Successors(id) {
			if succ != ir.NoBlock {
				counts[succ]++
			}
		}
	}
	return counts
}

// runPeephole removes behavior-free op sequences until nothing changes.
// Stack-only cancellations (dup/pop, swap/swap, pure push followed by pop)
// always run; scratch-slot rewrites (dead stores, single-use store/load
// forwarding) run only when OptimizeOptions.ScratchSlots is set.
func (b *build) runPeephole() error {
	popSpec, err := b.spec("pop")
	if err != nil {
		return err
	}
	for round := 0; round < maxPeepholeRounds; round++ {
		changed := false
		refs := b.slotRefCounts()
		for id := ir.BlockID(0); int(id) < b.graph.Len(); id++ {
			blk := b.graph.Block(id)
			if b.opt.ScratchSlots && b.killDeadStores(blk, popSpec) {
				changed = true
			}
			if b.cancelPairs(blk, refs) {
				changed = true
			}
		}
		if !changed {
			b.log.Debugf("peephole: fixed point after %d rounds", round)
			return nil
		}
	}
	return nil
}

// slotRefCounts counts every load and store touching each slot across the
// whole graph. Forwarding a store into an adjacent load is only safe when
// the pair is the slot's entire traffic.
func (b *build) slotRefCounts() map[*ir.ScratchSlot]int {
	refs := make(map[*ir.ScratchSlot]int)
	for id := ir.BlockID(0); int(id) < b.graph.Len(); id++ {
		for _, op := range b.graph.Block(id).Ops {
			if op.Slot != nil {
				refs[op.Slot]++
			}
		}
	}
	return refs
}

// cancelPairs removes adjacent op pairs with no net effect.
func (b *build) cancelPairs(blk *ir.Block, refs map[*ir.ScratchSlot]int) bool {
	ops := blk.Ops
	out := ops[:0:0]
	changed := false
	for i := 0; i < len(ops); i++ {
		if i+1 < len(ops) && b.cancels(ops[i], ops[i+1], refs) {
			b.log.Debugf("peephole: cancelling %s/%s in block %d",
				ops[i].Spec.Name, ops[i+1].Spec.Name, blk.ID)
			i++
			changed = true
			continue
		}
		out = append(out, ops[i])
	}
	if changed {
		blk.Ops = out
	}
	return changed
}

func (b *build) cancels(first, second ir.Op, refs map[*ir.ScratchSlot]int) bool {
	switch {
	case first.Spec.Name == "swap" && second.Spec.Name == "swap":
		return true
	case first.Spec.Pure() && second.Spec.Name == "pop":
		// Covers dup/pop as well: dropping both leaves the duplicated value
		// untouched.
		return true
	case b.opt.ScratchSlots &&
		first.Spec.Name == "store" && second.Spec.Name == "load" &&
		first.Slot == second.Slot && refs[first.Slot] == 2:
		// The slot's only traffic is this round-trip; the value is already
		// on top of the stack.
		return true
	}
	return false
}

// killDeadStores replaces a store whose slot is overwritten later in the
// same block, with no intervening read, by a pop. A callsub in between
// blocks the rewrite because the callee may read the slot.
func (b *build) killDeadStores(blk *ir.Block, popSpec ir.OpSpec) bool {
	changed := false
	for i, op := range blk.Ops {
		if op.Spec.Name != "store" {
			continue
		}
	dead:
		for j := i + 1; j < len(blk.Ops); j++ {
			next := blk.Ops[j]
			switch {
			case next.Spec.Name == "callsub":
				break dead
			case next.Slot == op.Slot && next.Spec.Name == "store":
				b.log.Debugf("peephole: dead store to %s in block %d", op.Slot, blk.ID)
				blk.Ops[i] = ir.NewOp(popSpec)
				changed = true
				break dead
			case next.Slot == op.Slot:
				break dead
			}
		}
	}
	return changed
}
