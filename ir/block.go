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

package ir

import (
	"github.com/michaeldiamant/pyteal/serr"
)

// BlockID indexes a block within its Graph arena. Successor references are
// IDs rather than pointers so back-edges for loops never create ownership
// cycles.
type BlockID int

// NoBlock marks a missing successor. A simple block whose Next is NoBlock
// terminates its subgraph.
const NoBlock BlockID = -1

// Block is either a simple block (ordered operations, one successor) or a
// conditional block (ordered operations ending in a branch, with a true and
// a false successor).
type Block struct {
	ID          BlockID
	Ops         []Op
	Conditional bool
	Next        BlockID // successor of a simple block
	TrueTo      BlockID // successors of a conditional block
	FalseTo     BlockID
}

// LastOpDeadens reports whether the block's final op unconditionally leaves
// the instruction stream, making any fallthrough unreachable.
func (b *Block) LastOpDeadens() bool {
	if len(b.Ops) == 0 {
		return false
	}
	return b.Ops[len(b.Ops)-1].Spec.deadens()
}

// Graph is the arena owning every block of a compilation. Blocks are
// addressed by BlockID; the graph may contain cycles.
type Graph struct {
	blocks []*Block
}

// NewGraph returns an empty arena.
func NewGraph() *Graph {
	return &Graph{}
}

// NewSimple allocates a simple block holding the given ops, with no
// successor bound yet.
func (g *Graph) NewSimple(ops ...Op) BlockID {
	id := BlockID(len(g.blocks))
	g.blocks = append(g.blocks, &Block{ID: id, Ops: ops, Next: NoBlock, TrueTo: NoBlock, FalseTo: NoBlock})
	return id
}

// NewConditional allocates a conditional block holding the given ops. Its
// branch targets must be bound with SetBranches before linearization.
func (g *Graph) NewConditional(ops ...Op) BlockID {
	id := g.NewSimple(ops...)
	g.blocks[id].Conditional = true
	return id
}

// Block returns the block for id, or nil when id is out of range.
func (g *Graph) Block(id BlockID) *Block {
	if id < 0 || int(id) >= len(g.blocks) {
		return nil
	}
	return g.blocks[id]
}

// Len returns the number of blocks in the arena.
func (g *Graph) Len() int {
	return len(g.blocks)
}

// SetNext binds the successor of a simple block.
func (g *Graph) SetNext(id, next BlockID) {
	g.blocks[id].Next = next
}

// SetBranches binds the successors of a conditional block.
func (g *Graph) SetBranches(id, trueTo, falseTo BlockID) {
	g.blocks[id].TrueTo = trueTo
	g.blocks[id].FalseTo = falseTo
}

// Append adds ops to the end of a block.
func (g *Graph) Append(id BlockID, ops ...Op) {
	g.blocks[id].Ops = append(g.blocks[id].Ops, ops...)
}

// Successors returns the ordered successor IDs of a block: false branch
// before true branch for conditional blocks, matching fallthrough
// preference.
func (g *Graph) Successors(id BlockID) []BlockID {
	b := g.blocks[id]
	if b.Conditional {
		return []BlockID{b.FalseTo, b.TrueTo}
	}
	if b.Next == NoBlock {
		return nil
	}
	return []BlockID{b.Next}
}

// Validate checks the arena's structural invariants: every successor
// reference resolves to a block, conditional blocks carry both branches, and
// simple blocks carry no branch targets.
func (g *Graph) Validate() error {
	inRange := func(id BlockID) bool {
		return id == NoBlock || (id >= 0 && int(id) < len(g.blocks))
	}
	for _, b := range g.blocks {
		if !inRange(b.Next) || !inRange(b.TrueTo) || !inRange(b.FalseTo) {
			return serr.InternalError("dangling block reference", "block", int(b.ID))
		}
		if b.Conditional {
			if b.TrueTo == NoBlock || b.FalseTo == NoBlock {
				return serr.InternalError("conditional block missing branch target", "block", int(b.ID))
			}
		} else if b.TrueTo != NoBlock || b.FalseTo != NoBlock {
			return serr.InternalError("simple block carries branch targets", "block", int(b.ID))
		}
	}
	return nil
}
