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
	"fmt"

	"github.com/algorand/go-deadlock"
)

var (
	slotMu     deadlock.Mutex
	nextSlotID uint64
)

// ScratchSlot is an abstract identity for a scratch storage location.
// Multiple expressions may reference the same slot to model variable reuse.
// A slot is bound to a concrete index in [0, NumSlots) only at linearization
// time, unless the caller reserved a specific index up front.
type ScratchSlot struct {
	id       uint64
	index    uint64
	reserved bool
}

// NewScratchSlot returns a slot with a fresh identity and no index bound.
func NewScratchSlot() *ScratchSlot {
	slotMu.Lock()
	defer slotMu.Unlock()
	nextSlotID++
	return &ScratchSlot{id: nextSlotID}
}

// ReservedScratchSlot returns a slot pinned to the given concrete index. The
// index is validated against the compilation's NumSlots limit when slots are
// resolved, not here.
func ReservedScratchSlot(index uint64) *ScratchSlot {
	slot := NewScratchSlot()
	slot.index = index
	slot.reserved = true
	return slot
}

// ID returns the slot's unique identity.
func (s *ScratchSlot) ID() uint64 {
	return s.id
}

// ReservedIndex returns the caller-requested index, if any.
func (s *ScratchSlot) ReservedIndex() (uint64, bool) {
	return s.index, s.reserved
}

func (s *ScratchSlot) String() string {
	if s.reserved {
		return fmt.Sprintf("slot#%d@%d", s.id, s.index)
	}
	return fmt.Sprintf("slot#%d", s.id)
}
