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

// NaryKind distinguishes the chained n-ary operators.
type NaryKind int

const (
	// NaryConcat chains byte-string concatenation.
	NaryConcat NaryKind = iota

	// NaryAnd is the short-circuiting boolean conjunction. Operands after
	// the first are evaluated only while the result is still undecided.
	NaryAnd

	// NaryOr is the short-circuiting boolean disjunction.
	NaryOr
)

func (k NaryKind) String() string {
	switch k {
	case NaryConcat:
		return "Concat"
	case NaryAnd:
		return "And"
	case NaryOr:
		return "Or"
	}
	return "Unknown"
}

// NaryExpr chains two or more operands under one operator.
type NaryExpr struct {
	Kind NaryKind
	Args []Expr
}

// Concat joins two or more byte strings.
func Concat(args ...Expr) *NaryExpr {
	return &NaryExpr{Kind: NaryConcat, Args: args}
}

// And is the short-circuiting conjunction of two or more uint64 conditions.
// An operand with side effects is not evaluated once an earlier operand has
// decided the result.
func And(args ...Expr) *NaryExpr {
	return &NaryExpr{Kind: NaryAnd, Args: args}
}

// Or is the short-circuiting disjunction of two or more uint64 conditions.
func Or(args ...Expr) *NaryExpr {
	return &NaryExpr{Kind: NaryOr, Args: args}
}

func (e *NaryExpr) Type() ir.StackType {
	if e.Kind == NaryConcat {
		return ir.StackBytes
	}
	return ir.StackUint64
}

func (e *NaryExpr) Children() []Expr { return e.Args }

func (e *NaryExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, arg := range e.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("(%s %s)", e.Kind, strings.Join(parts, " "))
}

func (e *NaryExpr) isExpr() {}
