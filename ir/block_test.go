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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaeldiamant/pyteal/serr"
	"github.com/michaeldiamant/pyteal/testpartitioning"
)

func TestGraphStructure(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	g := NewGraph()
	a := g.NewSimple(NewOp(OpsByName[2]["int"], "1"))
	c := g.NewConditional()
	exit := g.NewSimple()
	body := g.NewSimple(NewOp(OpsByName[2]["pop"]))

	g.SetNext(a, c)
	g.SetBranches(c, body, exit)
	g.SetNext(body, a) // back-edge

	require.Equal(t, 4, g.Len())
	require.NoError(t, g.Validate())

	require.Equal(t, []BlockID{c}, g.Successors(a))
	require.Equal(t, []BlockID{exit, body}, g.Successors(c), "false branch first")
	require.Nil(t, g.Successors(exit))

	require.Nil(t, g.Block(BlockID(99)))
	require.Nil(t, g.Block(NoBlock))
}

func TestGraphValidateDangling(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	g := NewGraph()
	a := g.NewSimple()
	g.SetNext(a, BlockID(7))
	err := g.Validate()
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindInternal))

	g = NewGraph()
	g.NewConditional() // branches never bound
	err = g.Validate()
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindInternal))

	g = NewGraph()
	b := g.NewSimple()
	g.Block(b).TrueTo = b // simple block must not carry branch targets
	err = g.Validate()
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindInternal))
}

func TestBlockLastOpDeadens(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	g := NewGraph()
	empty := g.NewSimple()
	require.False(t, g.Block(empty).LastOpDeadens())

	alive := g.NewSimple(NewOp(OpsByName[2]["int"], "1"))
	require.False(t, g.Block(alive).LastOpDeadens())

	dead := g.NewSimple(NewOp(OpsByName[2]["int"], "1"), NewOp(OpsByName[2]["return"]))
	require.True(t, g.Block(dead).LastOpDeadens())
}

type stubResolver struct {
	indexes map[uint64]uint64
}

func (r stubResolver) SlotIndex(slot *ScratchSlot) uint64 { return r.indexes[slot.ID()] }
func (r stubResolver) SubLabel(sub SubID) string          { return "sub0" }

func TestOpTeal(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	r := stubResolver{indexes: map[uint64]uint64{}}

	require.Equal(t, "int 1", NewOp(OpsByName[2]["int"], "1").Teal(r))
	require.Equal(t, "gtxna 0 ApplicationArgs 2",
		NewOp(OpsByName[2]["gtxna"], "0", "ApplicationArgs", "2").Teal(r))

	slot := NewScratchSlot()
	r.indexes[slot.ID()] = 5
	require.Equal(t, "store 5", NewSlotOp(OpsByName[2]["store"], slot).Teal(r))

	call := NewSubOp(OpsByName[4]["callsub"], SubID(0), "double")
	require.Equal(t, "callsub sub0 // double", call.Teal(r))

	annotated := NewOp(OpsByName[2]["int"], "6").WithComment("appl")
	require.Equal(t, "int 6 // appl", annotated.Teal(r))
}

func TestScratchSlotIdentity(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	a := NewScratchSlot()
	b := NewScratchSlot()
	require.NotEqual(t, a.ID(), b.ID())

	_, reserved := a.ReservedIndex()
	require.False(t, reserved)

	pinned := ReservedScratchSlot(31)
	index, reserved := pinned.ReservedIndex()
	require.True(t, reserved)
	require.Equal(t, uint64(31), index)
	require.Contains(t, pinned.String(), "@31")
}
