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

// Package ast defines the expression tree the compiler consumes. The variant
// set is closed: every node type lives in this package, and the lowering
// engine dispatches over the set exhaustively. Trees are immutable once
// built and read-only to the compiler.
package ast

import (
	"github.com/michaeldiamant/pyteal/ir"
)

// Expr is one node of the expression tree.
type Expr interface {
	// Type returns the declared type of the value the expression leaves on
	// the evaluation stack, or ir.StackNone for statement-like nodes.
	Type() ir.StackType

	// Children returns the ordered child expressions.
	Children() []Expr

	String() string

	// isExpr keeps the variant set closed to this package.
	isExpr()
}
