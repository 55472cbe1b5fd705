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

// IfExpr evaluates Cond and then exactly one of its branches. When Else is
// nil the Then branch must be statement-like.
type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

// If returns a two-branch conditional. Both branches must declare the same
// type, which becomes the conditional's type.
func If(cond, then, otherwise Expr) *IfExpr {
	return &IfExpr{Cond: cond, Then: then, Else: otherwise}
}

// When returns a single-branch conditional; then must be statement-like.
func When(cond, then Expr) *IfExpr {
	return &IfExpr{Cond: cond, Then: then}
}

func (e *IfExpr) Type() ir.StackType {
	if e.Else == nil {
		return ir.StackNone
	}
	return e.Then.Type()
}

func (e *IfExpr) Children() []Expr {
	if e.Else == nil {
		return []Expr{e.Cond, e.Then}
	}
	return []Expr{e.Cond, e.Then, e.Else}
}

func (e *IfExpr) String() string {
	if e.Else == nil {
		return fmt.Sprintf("(If %s %s)", e.Cond, e.Then)
	}
	return fmt.Sprintf("(If %s %s %s)", e.Cond, e.Then, e.Else)
}

func (e *IfExpr) isExpr() {}

// SeqExpr evaluates its children in order. Every child but the last must be
// statement-like; the final child supplies the sequence's value.
type SeqExpr struct {
	Exprs []Expr
}

// Seq returns the ordered sequence of the given expressions.
func Seq(exprs ...Expr) *SeqExpr {
	return &SeqExpr{Exprs: exprs}
}

func (e *SeqExpr) Type() ir.StackType {
	if len(e.Exprs) == 0 {
		return ir.StackNone
	}
	return e.Exprs[len(e.Exprs)-1].Type()
}

func (e *SeqExpr) Children() []Expr { return e.Exprs }

func (e *SeqExpr) String() string {
	parts := make([]string, len(e.Exprs))
	for i, child := range e.Exprs {
		parts[i] = child.String()
	}
	return fmt.Sprintf("(Seq %s)", strings.Join(parts, " "))
}

func (e *SeqExpr) isExpr() {}

// AssertExpr fails the program unless Cond is nonzero.
type AssertExpr struct {
	Cond Expr
}

// Assert fails the program immediately unless cond is nonzero.
func Assert(cond Expr) *AssertExpr {
	return &AssertExpr{Cond: cond}
}

func (e *AssertExpr) Type() ir.StackType { return ir.StackNone }
func (e *AssertExpr) Children() []Expr   { return []Expr{e.Cond} }
func (e *AssertExpr) String() string     { return fmt.Sprintf("(Assert %s)", e.Cond) }
func (e *AssertExpr) isExpr()            {}

// ReturnExpr ends the program immediately with the given uint64 result.
type ReturnExpr struct {
	Value Expr
}

// Return ends the program immediately with value as its result.
func Return(value Expr) *ReturnExpr {
	return &ReturnExpr{Value: value}
}

// Approve ends the program immediately with an approving result.
func Approve() *ReturnExpr {
	return Return(Int(1))
}

// Reject ends the program immediately with a rejecting result.
func Reject() *ReturnExpr {
	return Return(Int(0))
}

func (e *ReturnExpr) Type() ir.StackType { return ir.StackNone }
func (e *ReturnExpr) Children() []Expr   { return []Expr{e.Value} }
func (e *ReturnExpr) String() string     { return fmt.Sprintf("(Return %s)", e.Value) }
func (e *ReturnExpr) isExpr()            {}

// WhileExpr re-evaluates Body while Cond stays nonzero. The body's tail
// loops back to the condition, producing the block graph's only kind of
// back-edge.
type WhileExpr struct {
	Cond Expr
	Body Expr
}

// While returns a loop evaluating body while cond is nonzero. The body must
// be statement-like.
func While(cond, body Expr) *WhileExpr {
	return &WhileExpr{Cond: cond, Body: body}
}

func (e *WhileExpr) Type() ir.StackType { return ir.StackNone }
func (e *WhileExpr) Children() []Expr   { return []Expr{e.Cond, e.Body} }
func (e *WhileExpr) String() string     { return fmt.Sprintf("(While %s %s)", e.Cond, e.Body) }
func (e *WhileExpr) isExpr()            {}

// ForExpr runs Start once, then re-evaluates Body and Step while Cond stays
// nonzero.
type ForExpr struct {
	Start Expr
	Cond  Expr
	Step  Expr
	Body  Expr
}

// For returns a loop running start once, then evaluating body and step while
// cond is nonzero. Start, step, and body must be statement-like.
func For(start, cond, step, body Expr) *ForExpr {
	return &ForExpr{Start: start, Cond: cond, Step: step, Body: body}
}

func (e *ForExpr) Type() ir.StackType { return ir.StackNone }
func (e *ForExpr) Children() []Expr   { return []Expr{e.Start, e.Cond, e.Step, e.Body} }
func (e *ForExpr) String() string {
	return fmt.Sprintf("(For %s %s %s %s)", e.Start, e.Cond, e.Step, e.Body)
}
func (e *ForExpr) isExpr() {}
