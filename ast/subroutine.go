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
	"strings"

	"github.com/michaeldiamant/pyteal/ir"
)

// SubroutineDefinition declares a separately-compiled body with formal
// parameters bound through scratch slots. A definition is lowered exactly
// once no matter how many call sites reference it; its identity is the
// pointer itself.
type SubroutineDefinition struct {
	name       string
	returnType ir.StackType
	paramTypes []ir.StackType
	paramSlots []*ir.ScratchSlot
	body       Expr
}

// NewSubroutine declares a subroutine with the given return and parameter
// types. The body is attached with SetBody, which may reference the
// definition itself for recursion.
func NewSubroutine(name string, returnType ir.StackType, paramTypes ...ir.StackType) *SubroutineDefinition {
	slots := make([]*ir.ScratchSlot, len(paramTypes))
	for i := range slots {
		slots[i] = ir.NewScratchSlot()
	}
	return &SubroutineDefinition{
		name:       name,
		returnType: returnType,
		paramTypes: paramTypes,
		paramSlots: slots,
	}
}

// SetBody attaches the subroutine body and returns the definition for
// chaining. The body's declared type must equal the declared return type;
// the compiler verifies this when the definition is first lowered.
func (s *SubroutineDefinition) SetBody(body Expr) *SubroutineDefinition {
	s.body = body
	return s
}

// Name returns the subroutine's diagnostic name.
func (s *SubroutineDefinition) Name() string { return s.name }

// ReturnType returns the declared return type.
func (s *SubroutineDefinition) ReturnType() ir.StackType { return s.returnType }

// ParamTypes returns the declared formal parameter types in order.
func (s *SubroutineDefinition) ParamTypes() []ir.StackType { return s.paramTypes }

// ParamSlot returns the scratch slot binding formal parameter i.
func (s *SubroutineDefinition) ParamSlot(i int) *ir.ScratchSlot { return s.paramSlots[i] }

// Param returns an expression reading formal parameter i inside the body.
func (s *SubroutineDefinition) Param(i int) *ScratchLoadExpr {
	return ScratchLoad(s.paramSlots[i], s.paramTypes[i])
}

// Body returns the attached body, or nil if SetBody was never called.
func (s *SubroutineDefinition) Body() Expr { return s.body }

// Call returns a call-site expression binding args to the formal
// parameters.
func (s *SubroutineDefinition) Call(args ...Expr) *SubroutineCallExpr {
	return &SubroutineCallExpr{Def: s, Args: args}
}

// SubroutineCallExpr invokes a SubroutineDefinition with the given
// arguments. Argument types must exactly match the declared parameter
// types.
type SubroutineCallExpr struct {
	Def  *SubroutineDefinition
	Args []Expr
}

func (e *SubroutineCallExpr) Type() ir.StackType { return e.Def.returnType }
func (e *SubroutineCallExpr) Children() []Expr   { return e.Args }
func (e *SubroutineCallExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, arg := range e.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("(Call %s %s)", e.Def.name, strings.Join(parts, " "))
}
func (e *SubroutineCallExpr) isExpr() {}
