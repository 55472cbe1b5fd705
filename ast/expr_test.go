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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaeldiamant/pyteal/ir"
	"github.com/michaeldiamant/pyteal/testpartitioning"
)

func TestDeclaredTypes(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	for _, tc := range []struct {
		e    Expr
		want ir.StackType
	}{
		{Int(1), ir.StackUint64},
		{Bytes([]byte{1}), ir.StackBytes},
		{Str("abc"), ir.StackBytes},
		{TmplInt("TMPL_FEE"), ir.StackUint64},
		{TmplBytes("TMPL_OWNER"), ir.StackBytes},
		{Arg(0), ir.StackBytes},
		{Txn(TxnAmount), ir.StackUint64},
		{Txn(TxnSender), ir.StackBytes},
		{Txna(TxnApplicationArgs, 0), ir.StackBytes},
		{Gtxn(1, TxnFee), ir.StackUint64},
		{Global(GlobalZeroAddress), ir.StackBytes},
		{Add(Int(1), Int(2)), ir.StackUint64},
		{Eq(Int(1), Int(2)), ir.StackUint64},
		{Concat(Str("a"), Str("b")), ir.StackBytes},
		{And(Int(1), Int(0)), ir.StackUint64},
		{Itob(Int(1)), ir.StackBytes},
		{Btoi(Str("x")), ir.StackUint64},
		{Pop(Int(1)), ir.StackNone},
		{Assert(Int(1)), ir.StackNone},
		{Return(Int(1)), ir.StackNone},
		{Approve(), ir.StackNone},
		{Seq(Assert(Int(1)), Int(5)), ir.StackUint64},
		{Seq(), ir.StackNone},
		{If(Int(1), Int(2), Int(3)), ir.StackUint64},
		{When(Int(1), Assert(Int(1))), ir.StackNone},
		{While(Int(1), Pop(Int(1))), ir.StackNone},
		{SetBit(Int(0), Int(1), Int(1)), ir.StackUint64},
		{SetBit(Str("x"), Int(1), Int(1)), ir.StackBytes},
		{Substring3(Str("abc"), Int(0), Int(1)), ir.StackBytes},
		{MethodSignature("f()void"), ir.StackBytes},
		{ABIConst("uint64", uint64(1)), ir.StackBytes},
		{MethodReturn(Bytes([]byte{1})), ir.StackNone},
		{MethodCall(Int(1), "f()void"), ir.StackNone},
		{MethodCall(Int(1), "f()byte[]"), ir.StackBytes},
	} {
		require.Equal(t, tc.want, tc.e.Type(), tc.e.String())
	}
}

func TestChildrenOrdering(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	left, right := Int(1), Int(2)
	require.Equal(t, []Expr{left, right}, Add(left, right).Children())

	cond, then, otherwise := Int(1), Int(2), Int(3)
	require.Equal(t, []Expr{cond, then, otherwise}, If(cond, then, otherwise).Children())
	effect := Assert(then)
	require.Equal(t, []Expr{cond, effect}, When(cond, effect).Children())

	appID, arg := Int(7), Bytes([]byte{1})
	call := MethodCall(appID, "f(byte[])void", arg)
	require.Equal(t, []Expr{appID, arg}, call.Children())

	require.Nil(t, Int(1).Children())
	require.Nil(t, Txn(TxnSender).Children())
}

func TestStringForms(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	require.Equal(t, "(Int 7)", Int(7).String())
	require.Equal(t, "(Bytes 0x0a0b)", Bytes([]byte{0x0a, 0x0b}).String())
	require.Equal(t, "(+ (Int 1) (Int 2))", Add(Int(1), Int(2)).String())
	require.Equal(t, "(Txn Sender)", Txn(TxnSender).String())
	require.Equal(t, "(And (Int 1) (Int 0))", And(Int(1), Int(0)).String())
	require.Equal(t, "(Seq (Assert (Int 1)) (Int 2))", Seq(Assert(Int(1)), Int(2)).String())
}

func TestSubroutineDefinition(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	def := NewSubroutine("double", ir.StackUint64, ir.StackUint64)
	require.Equal(t, "double", def.Name())
	require.Equal(t, ir.StackUint64, def.ReturnType())
	require.Equal(t, []ir.StackType{ir.StackUint64}, def.ParamTypes())
	require.Nil(t, def.Body())

	body := Add(def.Param(0), def.Param(0))
	require.Same(t, def, def.SetBody(body))
	require.Same(t, body, def.Body().(*BinaryExpr))

	// Param reads go through the parameter's scratch slot.
	load := def.Param(0)
	require.Same(t, def.ParamSlot(0), load.Slot)
	require.Equal(t, ir.StackUint64, load.Type())

	call := def.Call(Int(3))
	require.Same(t, def, call.Def)
	require.Equal(t, ir.StackUint64, call.Type())
	require.Len(t, call.Children(), 1)

	other := NewSubroutine("double", ir.StackUint64, ir.StackUint64)
	require.NotSame(t, def.ParamSlot(0), other.ParamSlot(0),
		"definitions with equal signatures keep distinct identities")
}

func TestTxnFieldTable(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	require.Equal(t, "ApplicationArgs", TxnApplicationArgs.Name())
	require.True(t, TxnApplicationArgs.Array())
	require.False(t, TxnSender.Array())
	require.Equal(t, uint64(1), TxnSender.MinVersion())
	require.Equal(t, uint64(2), TxnOnCompletion.MinVersion())
	require.Equal(t, uint64(6), TxnLastLog.MinVersion())
	require.Equal(t, ir.StackBytes, TxnLastLog.FieldType())
	require.Equal(t, uint64(6), GlobalOpcodeBudget.MinVersion())
}
