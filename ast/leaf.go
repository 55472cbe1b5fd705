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
	"encoding/hex"
	"fmt"

	"github.com/michaeldiamant/pyteal/ir"
)

// IntConst pushes a uint64 constant.
type IntConst struct {
	Value uint64
}

// Int returns a uint64 constant leaf.
func Int(value uint64) *IntConst {
	return &IntConst{Value: value}
}

func (e *IntConst) Type() ir.StackType { return ir.StackUint64 }
func (e *IntConst) Children() []Expr   { return nil }
func (e *IntConst) String() string     { return fmt.Sprintf("(Int %d)", e.Value) }
func (e *IntConst) isExpr()            {}

// BytesConst pushes a byte-string constant.
type BytesConst struct {
	Value []byte
}

// Bytes returns a byte-string constant leaf.
func Bytes(value []byte) *BytesConst {
	return &BytesConst{Value: value}
}

// Str returns a byte-string constant leaf holding the UTF-8 bytes of s.
func Str(s string) *BytesConst {
	return &BytesConst{Value: []byte(s)}
}

func (e *BytesConst) Type() ir.StackType { return ir.StackBytes }
func (e *BytesConst) Children() []Expr   { return nil }
func (e *BytesConst) String() string {
	return fmt.Sprintf("(Bytes 0x%s)", hex.EncodeToString(e.Value))
}
func (e *BytesConst) isExpr() {}

// TemplateVar is a placeholder filled in after compilation, rendered as a
// TMPL_-prefixed assembly argument.
type TemplateVar struct {
	Name    string
	VarType ir.StackType
}

// TmplInt returns a uint64-typed template placeholder. Name must carry the
// TMPL_ prefix.
func TmplInt(name string) *TemplateVar {
	return &TemplateVar{Name: name, VarType: ir.StackUint64}
}

// TmplBytes returns a bytes-typed template placeholder. Name must carry the
// TMPL_ prefix.
func TmplBytes(name string) *TemplateVar {
	return &TemplateVar{Name: name, VarType: ir.StackBytes}
}

func (e *TemplateVar) Type() ir.StackType { return e.VarType }
func (e *TemplateVar) Children() []Expr   { return nil }
func (e *TemplateVar) String() string     { return fmt.Sprintf("(Tmpl %s)", e.Name) }
func (e *TemplateVar) isExpr()            {}

// ArgExpr pushes a logic signature argument. Only legal in signature mode.
type ArgExpr struct {
	Index uint64
}

// Arg returns a leaf pushing logic signature argument n.
func Arg(index uint64) *ArgExpr {
	return &ArgExpr{Index: index}
}

func (e *ArgExpr) Type() ir.StackType { return ir.StackBytes }
func (e *ArgExpr) Children() []Expr   { return nil }
func (e *ArgExpr) String() string     { return fmt.Sprintf("(Arg %d)", e.Index) }
func (e *ArgExpr) isExpr()            {}
