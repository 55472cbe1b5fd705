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

// UnaryExpr applies a single-operand opcode to its child.
type UnaryExpr struct {
	OpName  string
	Child   Expr
	RetType ir.StackType
}

func unary(op string, child Expr, retType ir.StackType) *UnaryExpr {
	return &UnaryExpr{OpName: op, Child: child, RetType: retType}
}

// Not returns a boolean negation of value.
func Not(value Expr) *UnaryExpr { return unary("!", value, ir.StackUint64) }

// BitwiseNot returns the bitwise inversion of value.
func BitwiseNot(value Expr) *UnaryExpr { return unary("~", value, ir.StackUint64) }

// Len returns the length of a byte string.
func Len(value Expr) *UnaryExpr { return unary("len", value, ir.StackUint64) }

// Itob converts a uint64 to its big-endian byte representation.
func Itob(value Expr) *UnaryExpr { return unary("itob", value, ir.StackBytes) }

// Btoi converts a big-endian byte representation to a uint64.
func Btoi(value Expr) *UnaryExpr { return unary("btoi", value, ir.StackUint64) }

// Sqrt returns the integer square root of value.
func Sqrt(value Expr) *UnaryExpr { return unary("sqrt", value, ir.StackUint64) }

// BitLen returns the bit length of value.
func BitLen(value Expr) *UnaryExpr { return unary("bitlen", value, ir.StackUint64) }

// Sha256 hashes a byte string with SHA-256.
func Sha256(value Expr) *UnaryExpr { return unary("sha256", value, ir.StackBytes) }

// Sha512_256 hashes a byte string with SHA-512/256.
func Sha512_256(value Expr) *UnaryExpr {
	return unary("sha512_256", value, ir.StackBytes)
}

// Keccak256 hashes a byte string with Keccak-256.
func Keccak256(value Expr) *UnaryExpr {
	return unary("keccak256", value, ir.StackBytes)
}

// Sha3_256 hashes a byte string with SHA3-256.
func Sha3_256(value Expr) *UnaryExpr {
	return unary("sha3_256", value, ir.StackBytes)
}

// BytesSqrt returns the integer square root of a big-endian byte integer.
func BytesSqrt(value Expr) *UnaryExpr { return unary("bsqrt", value, ir.StackBytes) }

// BytesNot returns the bitwise inversion of a byte string.
func BytesNot(value Expr) *UnaryExpr { return unary("b~", value, ir.StackBytes) }

// BytesZero returns a zero-filled byte string of the given length.
func BytesZero(length Expr) *UnaryExpr { return unary("bzero", length, ir.StackBytes) }

// Pop evaluates value and discards the result.
func Pop(value Expr) *UnaryExpr { return unary("pop", value, ir.StackNone) }

// Log writes a byte string to the transaction log. Application mode only.
func Log(value Expr) *UnaryExpr { return unary("log", value, ir.StackNone) }

// Balance returns the microalgo balance of an account. Application mode
// only.
func Balance(account Expr) *UnaryExpr {
	return unary("balance", account, ir.StackUint64)
}

// MinBalance returns the minimum balance of an account. Application mode
// only.
func MinBalance(account Expr) *UnaryExpr {
	return unary("min_balance", account, ir.StackUint64)
}

// AppGlobalGet reads an application global state value. Application mode
// only.
func AppGlobalGet(key Expr) *UnaryExpr {
	return unary("app_global_get", key, ir.StackAny)
}

// AppGlobalDel deletes an application global state value. Application mode
// only.
func AppGlobalDel(key Expr) *UnaryExpr {
	return unary("app_global_del", key, ir.StackNone)
}

func (e *UnaryExpr) Type() ir.StackType { return e.RetType }
func (e *UnaryExpr) Children() []Expr   { return []Expr{e.Child} }
func (e *UnaryExpr) String() string     { return fmt.Sprintf("(%s %s)", e.OpName, e.Child) }
func (e *UnaryExpr) isExpr()            {}
