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

// MethodSignatureExpr pushes the 4-byte dispatch selector of a canonical
// method signature. Selector derivation is delegated to the abi collaborator
// at lowering time.
type MethodSignatureExpr struct {
	Signature string
}

// MethodSignature returns a leaf pushing the selector of the given canonical
// method signature, such as "add(uint64,uint64)uint64".
func MethodSignature(signature string) *MethodSignatureExpr {
	return &MethodSignatureExpr{Signature: signature}
}

func (e *MethodSignatureExpr) Type() ir.StackType { return ir.StackBytes }
func (e *MethodSignatureExpr) Children() []Expr   { return nil }
func (e *MethodSignatureExpr) String() string {
	return fmt.Sprintf("(MethodSignature %q)", e.Signature)
}
func (e *MethodSignatureExpr) isExpr() {}

// ABIConstExpr pushes a compile-time ABI-encoded constant. Encoding is
// delegated to the abi collaborator at lowering time; a value the type
// cannot encode fails the compilation.
type ABIConstExpr struct {
	TypeStr string
	Value   interface{}
}

// ABIConst returns a leaf pushing value encoded under the named ABI type.
func ABIConst(typeStr string, value interface{}) *ABIConstExpr {
	return &ABIConstExpr{TypeStr: typeStr, Value: value}
}

func (e *ABIConstExpr) Type() ir.StackType { return ir.StackBytes }
func (e *ABIConstExpr) Children() []Expr   { return nil }
func (e *ABIConstExpr) String() string {
	return fmt.Sprintf("(ABIConst %s %v)", e.TypeStr, e.Value)
}
func (e *ABIConstExpr) isExpr() {}

// MethodReturnExpr logs an ABI method's return value prefixed with the
// return-event selector, or evaluates a statement-like value as-is for void
// methods.
type MethodReturnExpr struct {
	Value Expr
}

// MethodReturn wraps an ABI method's return value. A bytes-typed value is
// logged behind the return-event selector; a statement-like value passes
// through untouched.
func MethodReturn(value Expr) *MethodReturnExpr {
	return &MethodReturnExpr{Value: value}
}

func (e *MethodReturnExpr) Type() ir.StackType { return ir.StackNone }
func (e *MethodReturnExpr) Children() []Expr   { return []Expr{e.Value} }
func (e *MethodReturnExpr) String() string     { return fmt.Sprintf("(MethodReturn %s)", e.Value) }
func (e *MethodReturnExpr) isExpr()            {}

// MethodCallExpr issues an inner-transaction application call dispatching to
// an ABI method of a foreign application. The payload (selector plus encoded
// arguments) is built through the abi collaborator. Application mode only.
type MethodCallExpr struct {
	AppID     Expr
	Signature string
	Args      []Expr // already ABI-encoded byte strings, in declared order
}

// MethodCall returns an inner-transaction call to the named method of the
// application identified by appID. Each argument must be a bytes-typed
// expression holding the ABI encoding of the corresponding parameter.
func MethodCall(appID Expr, signature string, args ...Expr) *MethodCallExpr {
	return &MethodCallExpr{AppID: appID, Signature: signature, Args: args}
}

// Type is bytes when the method signature declares a return value (the raw
// logged payload after the return-event selector), and none for void
// methods. The signature is parsed authoritatively at lowering time; a
// malformed signature conservatively reads as void here.
func (e *MethodCallExpr) Type() ir.StackType {
	if len(e.Signature) > 0 && !endsWithVoid(e.Signature) {
		return ir.StackBytes
	}
	return ir.StackNone
}

func endsWithVoid(signature string) bool {
	const void = "void"
	return len(signature) >= len(void) && signature[len(signature)-len(void):] == void
}

func (e *MethodCallExpr) Children() []Expr {
	children := make([]Expr, 0, len(e.Args)+1)
	children = append(children, e.AppID)
	children = append(children, e.Args...)
	return children
}

func (e *MethodCallExpr) String() string {
	return fmt.Sprintf("(MethodCall %q %s)", e.Signature, e.AppID)
}

func (e *MethodCallExpr) isExpr() {}
