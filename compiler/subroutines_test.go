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

package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaeldiamant/pyteal/ast"
	"github.com/michaeldiamant/pyteal/ir"
	"github.com/michaeldiamant/pyteal/serr"
	"github.com/michaeldiamant/pyteal/testpartitioning"
)

func TestSubroutineNeedsCallsub(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	one := ast.NewSubroutine("one", ir.StackUint64)
	one.SetBody(ast.Int(1))

	_, err := Compile(one.Call(), CompileOptions{Version: 3})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindInput))

	out, err := Compile(one.Call(), CompileOptions{Version: 4})
	require.NoError(t, err)
	require.Contains(t, out, "callsub sub0 // one")
}

func TestSubroutineMissingBody(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	f := ast.NewSubroutine("f", ir.StackUint64)
	_, err := Compile(f.Call(), CompileOptions{Version: 4})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindInput))
}

func TestSubroutineArgChecks(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	f := ast.NewSubroutine("f", ir.StackUint64, ir.StackUint64)
	f.SetBody(ast.Add(f.Param(0), ast.Int(1)))

	_, err := Compile(f.Call(), CompileOptions{Version: 4})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindType))

	_, err = Compile(f.Call(ast.Bytes([]byte("b"))), CompileOptions{Version: 4})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindType))

	_, err = Compile(f.Call(ast.Int(1), ast.Int(2)), CompileOptions{Version: 4})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindType))
}

func TestSubroutineBodyType(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	f := ast.NewSubroutine("f", ir.StackUint64)
	f.SetBody(ast.Bytes([]byte("b")))
	_, err := Compile(f.Call(), CompileOptions{Version: 4})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindType))
}

func TestSubroutineVoid(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	check := ast.NewSubroutine("check", ir.StackNone)
	check.SetBody(ast.Assert(ast.Int(1)))

	program := ast.Seq(check.Call(), ast.Int(1))
	out, err := Compile(program, CompileOptions{Version: 4})
	require.NoError(t, err)
	require.Contains(t, out, "callsub sub0 // check")
	require.Contains(t, out, "sub0: // check")
	require.Contains(t, out, "retsub")
}

func TestSubroutineRecursion(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	rec := ast.NewSubroutine("rec", ir.StackUint64)
	rec.SetBody(ast.If(ast.Global(ast.GlobalRound), rec.Call(), ast.Int(1)))

	out, err := Compile(rec.Call(), CompileOptions{Version: 4})
	require.NoError(t, err)
	// One call from the main body, one from inside the body itself.
	require.Equal(t, 2, strings.Count(out, "callsub sub0 // rec"))
	require.Equal(t, 1, strings.Count(out, "sub0: // rec"))
}

func TestSubroutineRecursionWithParams(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	f := ast.NewSubroutine("f", ir.StackUint64, ir.StackUint64)
	f.SetBody(ast.If(f.Param(0), f.Call(ast.Int(0)), ast.Int(1)))

	_, err := Compile(f.Call(ast.Int(3)), CompileOptions{Version: 4})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindInput))
	sub, ok := serr.Attr(err, "subroutine")
	require.True(t, ok)
	require.Equal(t, "f", sub)
}

func TestSubroutineMutualRecursionWithParams(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	f := ast.NewSubroutine("f", ir.StackUint64, ir.StackUint64)
	g := ast.NewSubroutine("g", ir.StackUint64, ir.StackUint64)
	f.SetBody(g.Call(f.Param(0)))
	g.SetBody(ast.If(g.Param(0), f.Call(ast.Int(0)), ast.Int(1)))

	_, err := Compile(f.Call(ast.Int(3)), CompileOptions{Version: 4})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindInput))
}

func TestSubroutineChained(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	inner := ast.NewSubroutine("inner", ir.StackUint64, ir.StackUint64)
	inner.SetBody(ast.Add(inner.Param(0), ast.Int(1)))
	outer := ast.NewSubroutine("outer", ir.StackUint64, ir.StackUint64)
	outer.SetBody(inner.Call(ast.Add(outer.Param(0), ast.Int(10))))

	out, err := Compile(outer.Call(ast.Int(5)), CompileOptions{Version: 4})
	require.NoError(t, err)
	// Registration follows first call order: outer first, then inner.
	require.Contains(t, out, "sub0: // outer")
	require.Contains(t, out, "sub1: // inner")
	require.Contains(t, out, "callsub sub1 // inner")
}
