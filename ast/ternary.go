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

// TernaryExpr applies a three-operand opcode to its children.
type TernaryExpr struct {
	OpName  string
	A, B, C Expr
	RetType ir.StackType
}

func ternary(op string, a, b, c Expr, retType ir.StackType) *TernaryExpr {
	return &TernaryExpr{OpName: op, A: a, B: b, C: c, RetType: retType}
}

// Ed25519Verify verifies sig over ("ProgData" || program_hash || data)
// against the public key.
func Ed25519Verify(data, sig, key Expr) *TernaryExpr {
	return ternary("ed25519verify", data, sig, key, ir.StackUint64)
}

// Ed25519VerifyBare verifies sig over data against the public key, with no
// domain prefix.
func Ed25519VerifyBare(data, sig, key Expr) *TernaryExpr {
	return ternary("ed25519verify_bare", data, sig, key, ir.StackUint64)
}

// SetBit returns value with the bit at index replaced by bit.
func SetBit(value, index, bit Expr) *TernaryExpr {
	return ternary("setbit", value, index, bit, value.Type())
}

// SetByte returns the byte string with the byte at index replaced.
func SetByte(value, index, byteValue Expr) *TernaryExpr {
	return ternary("setbyte", value, index, byteValue, ir.StackBytes)
}

// Substring3 returns value[start:end].
func Substring3(value, start, end Expr) *TernaryExpr {
	return ternary("substring3", value, start, end, ir.StackBytes)
}

// Extract3 returns length bytes of value beginning at start.
func Extract3(value, start, length Expr) *TernaryExpr {
	return ternary("extract3", value, start, length, ir.StackBytes)
}

// Divw returns (hi*2^64 + lo) / denominator, failing on overflow.
func Divw(hi, lo, denominator Expr) *TernaryExpr {
	return ternary("divw", hi, lo, denominator, ir.StackUint64)
}

// AppLocalPut writes key to value in account's local state.
func AppLocalPut(account, key, value Expr) *TernaryExpr {
	return ternary("app_local_put", account, key, value, ir.StackNone)
}

func (e *TernaryExpr) Type() ir.StackType { return e.RetType }
func (e *TernaryExpr) Children() []Expr   { return []Expr{e.A, e.B, e.C} }
func (e *TernaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s %s)", e.OpName, e.A, e.B, e.C)
}
func (e *TernaryExpr) isExpr() {}
