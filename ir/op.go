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
	"strconv"
	"strings"
)

// SubID identifies a subroutine definition within a compilation. IDs are
// handed out by the subroutine manager; NoSub marks an op that does not
// reference a subroutine.
type SubID int

// NoSub is the zero subroutine reference.
const NoSub SubID = -1

// Op is one operation: a mnemonic plus ordered immediate arguments, an
// optional scratch-slot or subroutine reference resolved at linearization
// time, and an optional human-readable annotation. Ops are immutable once
// emitted.
type Op struct {
	Spec    OpSpec
	Imm     []string
	Slot    *ScratchSlot
	Sub     SubID
	Comment string
}

// NewOp builds an op with rendered immediates.
func NewOp(spec OpSpec, imm ...string) Op {
	return Op{Spec: spec, Imm: imm, Sub: NoSub}
}

// NewSlotOp builds a load/store class op referencing an unresolved slot.
func NewSlotOp(spec OpSpec, slot *ScratchSlot) Op {
	return Op{Spec: spec, Slot: slot, Sub: NoSub}
}

// NewSubOp builds a callsub op referencing a subroutine by identity.
func NewSubOp(spec OpSpec, sub SubID, comment string) Op {
	return Op{Spec: spec, Sub: sub, Comment: comment}
}

// WithComment returns a copy of the op carrying the annotation.
func (op Op) WithComment(comment string) Op {
	op.Comment = comment
	return op
}

// Resolver supplies the late-bound pieces of an op line: the concrete index
// of a scratch slot and the label of a subroutine entry point.
type Resolver interface {
	SlotIndex(slot *ScratchSlot) uint64
	SubLabel(sub SubID) string
}

// Teal renders the op as one line of assembly.
func (op Op) Teal(r Resolver) string {
	var sb strings.Builder
	sb.WriteString(op.Spec.Name)
	if op.Slot != nil {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatUint(r.SlotIndex(op.Slot), 10))
	}
	if op.Sub != NoSub {
		sb.WriteByte(' ')
		sb.WriteString(r.SubLabel(op.Sub))
	}
	for _, arg := range op.Imm {
		sb.WriteByte(' ')
		sb.WriteString(arg)
	}
	if op.Comment != "" {
		sb.WriteString(" // ")
		sb.WriteString(op.Comment)
	}
	return sb.String()
}
