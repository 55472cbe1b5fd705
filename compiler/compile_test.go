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
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/michaeldiamant/pyteal/ast"
	"github.com/michaeldiamant/pyteal/config"
	"github.com/michaeldiamant/pyteal/ir"
	"github.com/michaeldiamant/pyteal/serr"
	"github.com/michaeldiamant/pyteal/testpartitioning"
)

func TestCompileArithmetic(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	out, err := Compile(ast.Add(ast.Int(1), ast.Int(2)), CompileOptions{})
	require.NoError(t, err)
	require.Equal(t, "#pragma version 2\nint 1\nint 2\n+", out)
}

func TestCompileConditional(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	out, err := Compile(ast.If(ast.Int(1), ast.Int(2), ast.Int(3)), CompileOptions{})
	require.NoError(t, err)
	expected := []string{
		"#pragma version 2",
		"int 1",
		"bnz main_l3",
		"int 3",
		"return",
		"main_l3:",
		"int 2",
		"return",
	}
	require.Empty(t, cmp.Diff(expected, strings.Split(out, "\n")))
}

func TestCompileNilProgram(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	_, err := Compile(nil, CompileOptions{})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindCompile))
	require.True(t, serr.IsKind(err, serr.KindInput))
}

func TestCompileRootType(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	_, err := Compile(ast.Bytes([]byte("x")), CompileOptions{})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindType))

	// An any-typed root does not declare what it leaves on the stack.
	_, err = Compile(ast.AppGlobalGet(ast.Bytes([]byte("k"))), CompileOptions{})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindType))

	// A statement-like root is fine: it exits through Return nodes.
	out, err := Compile(ast.If(ast.Int(1), ast.Approve(), ast.Reject()), CompileOptions{})
	require.NoError(t, err)
	require.Contains(t, out, "return")
}

func TestCompileVersionBounds(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	for _, version := range []uint64{1, config.MaxTealVersion + 1, 100} {
		_, err := Compile(ast.Int(1), CompileOptions{Version: version})
		require.Error(t, err, "version %d", version)
		require.True(t, serr.IsKind(err, serr.KindInput))
	}
	for version := uint64(config.MinTealVersion); version <= config.MaxTealVersion; version++ {
		out, err := Compile(ast.Int(1), CompileOptions{Version: version})
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("#pragma version %d\nint 1", version), out)
	}
}

func TestCompileDefaultVersion(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	out, err := Compile(ast.Int(7), CompileOptions{})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "#pragma version 2\n"))
}

func TestCompileGroupIndexBound(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	_, err := Compile(ast.Gtxn(16, ast.TxnFee), CompileOptions{})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindInput))
	index, ok := serr.Attr(err, "index")
	require.True(t, ok)
	require.Equal(t, uint64(16), index)

	out, err := Compile(ast.Gtxn(15, ast.TxnFee), CompileOptions{})
	require.NoError(t, err)
	require.Contains(t, out, "gtxn 15 Fee")
}

func TestCompileSubroutineShared(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	double := ast.NewSubroutine("double", ir.StackUint64, ir.StackUint64)
	double.SetBody(ast.Add(double.Param(0), double.Param(0)))

	program := ast.Add(double.Call(ast.Int(1)), double.Call(ast.Int(2)))
	out, err := Compile(program, CompileOptions{Version: 4})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"#pragma version 4",
		"int 1",
		"store 0",
		"callsub sub0 // double",
		"int 2",
		"store 0",
		"callsub sub0 // double",
		"+",
		"return",
		"sub0: // double",
		"load 0",
		"load 0",
		"+",
		"retsub",
	}, "\n")
	require.Equal(t, expected, out)

	// The body is lowered once however many call sites exist.
	require.Equal(t, 2, strings.Count(out, "callsub sub0 // double"))
	require.Equal(t, 1, strings.Count(out, "sub0: // double"))
}

func TestCompileOpUpOnCall(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	program := ast.Ed25519VerifyBare(
		ast.Bytes([]byte("data")), ast.Bytes([]byte("sig")), ast.Bytes([]byte("key")))
	out, err := Compile(program, CompileOptions{
		Version:  7,
		Optimize: OptimizeOptions{OpUp: OpUpOnCall},
	})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"#pragma version 7",
		"byte 0x64617461",
		"byte 0x736967",
		"byte 0x6b6579",
		"callsub sub0 // opup",
		"ed25519verify_bare",
		"return",
		"sub0: // opup",
		"itxn_begin",
		"int 6 // appl",
		"itxn_field TypeEnum",
		"int 0",
		"itxn_field Fee",
		"itxn_submit",
		"retsub",
	}, "\n")
	require.Equal(t, expected, out)
}

func TestCompileOpUpExplicit(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	program := ast.Ed25519VerifyBare(
		ast.Bytes([]byte("data")), ast.Bytes([]byte("sig")), ast.Bytes([]byte("key")))
	out, err := Compile(program, CompileOptions{Version: 7})
	require.NoError(t, err)
	require.NotContains(t, out, "callsub")
	require.Contains(t, out, "ed25519verify_bare")
}

func TestCompileOpUpNeedsAppMode(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	program := ast.Ed25519VerifyBare(
		ast.Bytes([]byte("data")), ast.Bytes([]byte("sig")), ast.Bytes([]byte("key")))
	_, err := Compile(program, CompileOptions{
		Version:  7,
		Mode:     ModeSignature,
		Optimize: OptimizeOptions{OpUp: OpUpOnCall},
	})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindInput))
}

// TestCompileOpUpWithoutCostlyOps checks that OnCall mode stays inert for
// programs that never exceed the budget, even where the mode or version could
// not support a top-up.
func TestCompileOpUpWithoutCostlyOps(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	out, err := Compile(ast.Int(1), CompileOptions{
		Version:  2,
		Mode:     ModeSignature,
		Optimize: OptimizeOptions{OpUp: OpUpOnCall},
	})
	require.NoError(t, err)
	require.Equal(t, "#pragma version 2\nint 1", out)
}

func TestCompileShortCircuit(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	out, err := Compile(ast.And(ast.Int(1), ast.Int(2), ast.Int(3)), CompileOptions{})
	require.NoError(t, err)
	// One decision point per operand; the shared result blocks push the
	// canonical boolean.
	require.Equal(t, 3, strings.Count(out, "bnz"))
	require.Contains(t, out, "int 1")
	require.Contains(t, out, "int 0")

	out, err = Compile(ast.Or(ast.Int(0), ast.Int(1)), CompileOptions{})
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(out, "bnz"))
}

func TestCompileLoop(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	i := ir.NewScratchSlot()
	program := ast.Seq(
		ast.ScratchStore(i, ast.Int(0)),
		ast.While(
			ast.Lt(ast.ScratchLoad(i, ir.StackUint64), ast.Int(10)),
			ast.ScratchStore(i, ast.Add(ast.ScratchLoad(i, ir.StackUint64), ast.Int(1))),
		),
		ast.ScratchLoad(i, ir.StackUint64),
	)
	out, err := Compile(program, CompileOptions{Version: 4})
	require.NoError(t, err)
	// The loop body jumps back to the condition check.
	require.Contains(t, out, "b main_l")
	require.Contains(t, out, "bnz main_l")

	_, err = Compile(program, CompileOptions{Version: 3})
	require.Error(t, err)
	require.True(t, serr.IsKind(err, serr.KindInput))
}

func TestCompileErrorsCarryCompileKind(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	cases := []struct {
		name  string
		root  ast.Expr
		opts  CompileOptions
		cause serr.Kind
	}{
		{"nil root", nil, CompileOptions{}, serr.KindInput},
		{"bytes root", ast.Bytes([]byte("b")), CompileOptions{}, serr.KindType},
		{"bad version", ast.Int(1), CompileOptions{Version: 1}, serr.KindInput},
		{"group index", ast.Gtxn(20, ast.TxnFee), CompileOptions{}, serr.KindInput},
		{"mixed compare", ast.Eq(ast.Int(1), ast.Bytes([]byte("b"))), CompileOptions{}, serr.KindType},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compile(tc.root, tc.opts)
			require.Error(t, err)
			require.True(t, serr.IsKind(err, serr.KindCompile))
			require.True(t, serr.IsKind(err, tc.cause))
		})
	}
}

// genUint64Tree draws a random uint64-typed expression of bounded depth from
// the arithmetic and comparison constructors.
func genUint64Tree(t *rapid.T, depth int) ast.Expr {
	if depth <= 0 || rapid.Bool().Draw(t, "leaf") {
		return ast.Int(rapid.Uint64().Draw(t, "value"))
	}
	left := genUint64Tree(t, depth-1)
	right := genUint64Tree(t, depth-1)
	switch rapid.IntRange(0, 5).Draw(t, "op") {
	case 0:
		return ast.Add(left, right)
	case 1:
		return ast.Minus(left, right)
	case 2:
		return ast.Mul(left, right)
	case 3:
		return ast.Lt(left, right)
	case 4:
		return ast.If(left, right, genUint64Tree(t, depth-1))
	default:
		return ast.Eq(left, right)
	}
}

func TestCompileDeterministic(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		program := genUint64Tree(t, 4)
		first, err := Compile(program, CompileOptions{})
		require.NoError(t, err)
		second, err := Compile(program, CompileOptions{})
		require.NoError(t, err)
		require.Equal(t, first, second)

		require.True(t, strings.HasPrefix(first, "#pragma version 2\n"))
		require.False(t, strings.HasSuffix(first, "\n"))
		for _, line := range strings.Split(first, "\n") {
			require.NotEmpty(t, line)
		}
	})
}

func TestCompileRouterProgram(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	r := ast.NewRouter("calculator")
	require.NoError(t, r.AddMethod("add(uint64,uint64)uint64",
		ast.Itob(ast.Add(ast.Btoi(ast.Txna(ast.TxnApplicationArgs, 1)),
			ast.Btoi(ast.Txna(ast.TxnApplicationArgs, 2))))))
	require.NoError(t, r.AddBareCall(ast.OnCompleteNoOp, ast.Seq()))

	approval, clearState, err := r.BuildProgram()
	require.NoError(t, err)

	out, err := Compile(approval, CompileOptions{Version: 5})
	require.NoError(t, err)
	require.Contains(t, out, "txn NumAppArgs")
	require.Contains(t, out, "txna ApplicationArgs 0")
	require.Contains(t, out, "byte 0x151f7c75")
	require.Contains(t, out, "log")

	out, err = Compile(clearState, CompileOptions{Version: 5})
	require.NoError(t, err)
	require.Equal(t, "#pragma version 5\nint 0\nreturn", out)
}

// TestCompileVersionMonotonic checks that raising the target version never
// breaks a program that already compiled at a lower one.
func TestCompileVersionMonotonic(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	programs := []ast.Expr{
		ast.Add(ast.Int(1), ast.Int(2)),
		ast.If(ast.Int(1), ast.Int(2), ast.Int(3)),
		ast.Seq(ast.Assert(ast.Int(1)), ast.Int(0)),
		ast.And(ast.Int(1), ast.Int(1)),
	}
	for _, program := range programs {
		for version := uint64(config.MinTealVersion); version <= config.MaxTealVersion; version++ {
			_, err := Compile(program, CompileOptions{Version: version})
			require.NoError(t, err, "program %s at version %d", program, version)
		}
	}
}
