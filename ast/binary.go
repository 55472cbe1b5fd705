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

// BinaryExpr applies a two-operand opcode to its children. Operands are
// evaluated left to right.
type BinaryExpr struct {
	OpName  string
	Left    Expr
	Right   Expr
	RetType ir.StackType
}

func binary(op string, left, right Expr, retType ir.StackType) *BinaryExpr {
	return &BinaryExpr{OpName: op, Left: left, Right: right, RetType: retType}
}

func arith(op string, left, right Expr) *BinaryExpr {
	return binary(op, left, right, ir.StackUint64)
}

// Add returns left + right.
func Add(left, right Expr) *BinaryExpr { return arith("+", left, right) }

// Minus returns left - right.
func Minus(left, right Expr) *BinaryExpr { return arith("-", left, right) }

// Mul returns left * right.
func Mul(left, right Expr) *BinaryExpr { return arith("*", left, right) }

// Div returns left / right.
func Div(left, right Expr) *BinaryExpr { return arith("/", left, right) }

// Mod returns left % right.
func Mod(left, right Expr) *BinaryExpr { return arith("%", left, right) }

// Exp returns left raised to right.
func Exp(left, right Expr) *BinaryExpr { return arith("exp", left, right) }

// Lt returns 1 iff left < right.
func Lt(left, right Expr) *BinaryExpr { return arith("<", left, right) }

// Gt returns 1 iff left > right.
func Gt(left, right Expr) *BinaryExpr { return arith(">", left, right) }

// Le returns 1 iff left <= right.
func Le(left, right Expr) *BinaryExpr { return arith("<=", left, right) }

// Ge returns 1 iff left >= right.
func Ge(left, right Expr) *BinaryExpr { return arith(">=", left, right) }

// BitwiseAnd returns left & right.
func BitwiseAnd(left, right Expr) *BinaryExpr { return arith("&", left, right) }

// BitwiseOr returns left | right.
func BitwiseOr(left, right Expr) *BinaryExpr { return arith("|", left, right) }

// BitwiseXor returns left ^ right.
func BitwiseXor(left, right Expr) *BinaryExpr { return arith("^", left, right) }

// ShiftLeft returns left << right.
func ShiftLeft(left, right Expr) *BinaryExpr { return arith("shl", left, right) }

// ShiftRight returns left >> right.
func ShiftRight(left, right Expr) *BinaryExpr { return arith("shr", left, right) }

// Eq returns 1 iff left equals right. The operands must share one declared
// type.
func Eq(left, right Expr) *BinaryExpr {
	return binary("==", left, right, ir.StackUint64)
}

// Neq returns 1 iff left differs from right. The operands must share one
// declared type.
func Neq(left, right Expr) *BinaryExpr {
	return binary("!=", left, right, ir.StackUint64)
}

// GetBit reads the bit of value at the given index.
func GetBit(value, index Expr) *BinaryExpr {
	return binary("getbit", value, index, ir.StackUint64)
}

// GetByte reads the byte of value at the given index.
func GetByte(value, index Expr) *BinaryExpr {
	return binary("getbyte", value, index, ir.StackUint64)
}

// BytesAdd returns the sum of two big-endian byte integers.
func BytesAdd(left, right Expr) *BinaryExpr {
	return binary("b+", left, right, ir.StackBytes)
}

// BytesMinus returns the difference of two big-endian byte integers.
func BytesMinus(left, right Expr) *BinaryExpr {
	return binary("b-", left, right, ir.StackBytes)
}

// BytesMul returns the product of two big-endian byte integers.
func BytesMul(left, right Expr) *BinaryExpr {
	return binary("b*", left, right, ir.StackBytes)
}

// BytesDiv returns the quotient of two big-endian byte integers.
func BytesDiv(left, right Expr) *BinaryExpr {
	return binary("b/", left, right, ir.StackBytes)
}

// BytesEq returns 1 iff two big-endian byte integers are equal.
func BytesEq(left, right Expr) *BinaryExpr {
	return binary("b==", left, right, ir.StackUint64)
}

// BytesLt returns 1 iff left < right over big-endian byte integers.
func BytesLt(left, right Expr) *BinaryExpr {
	return binary("b<", left, right, ir.StackUint64)
}

// AppLocalGet reads an account's local state value for the current app.
// Application mode only.
func AppLocalGet(account, key Expr) *BinaryExpr {
	return binary("app_local_get", account, key, ir.StackAny)
}

// AppGlobalPut writes an application global state value. Application mode
// only.
func AppGlobalPut(key, value Expr) *BinaryExpr {
	return binary("app_global_put", key, value, ir.StackNone)
}

func (e *BinaryExpr) Type() ir.StackType { return e.RetType }
func (e *BinaryExpr) Children() []Expr   { return []Expr{e.Left, e.Right} }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.OpName, e.Left, e.Right)
}
func (e *BinaryExpr) isExpr() {}
