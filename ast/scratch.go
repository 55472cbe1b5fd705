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

package ast

import (
	"fmt"

	"github.com/michaeldiamant/pyteal/ir"
)

// ScratchStoreExpr writes a value into a scratch slot.
type ScratchStoreExpr struct {
	Slot  *ir.ScratchSlot
	Value Expr
}

// ScratchStore writes value into slot.
func ScratchStore(slot *ir.ScratchSlot, value Expr) *ScratchStoreExpr {
	return &ScratchStoreExpr{Slot: slot, Value: value}
}

func (e *ScratchStoreExpr) Type() ir.StackType { return ir.StackNone }
func (e *ScratchStoreExpr) Children() []Expr   { return []Expr{e.Value} }
func (e *ScratchStoreExpr) String() string {
	return fmt.Sprintf("(Store %s %s)", e.Slot, e.Value)
}
func (e *ScratchStoreExpr) isExpr() {}

// ScratchLoadExpr reads a scratch slot, declaring the type of the value the
// enclosing program stored there.
type ScratchLoadExpr struct {
	Slot     *ir.ScratchSlot
	LoadType ir.StackType
}

// ScratchLoad reads slot as the given type.
func ScratchLoad(slot *ir.ScratchSlot, loadType ir.StackType) *ScratchLoadExpr {
	return &ScratchLoadExpr{Slot: slot, LoadType: loadType}
}

func (e *ScratchLoadExpr) Type() ir.StackType { return e.LoadType }
func (e *ScratchLoadExpr) Children() []Expr   { return nil }
func (e *ScratchLoadExpr) String() string     { return fmt.Sprintf("(Load %s)", e.Slot) }
func (e *ScratchLoadExpr) isExpr()            {}
