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
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/michaeldiamant/pyteal/abi"
	"github.com/michaeldiamant/pyteal/ast"
	"github.com/michaeldiamant/pyteal/config"
	"github.com/michaeldiamant/pyteal/ir"
	"github.com/michaeldiamant/pyteal/logging"
	"github.com/michaeldiamant/pyteal/serr"
)

// backBranchVersion is the first program version allowing branches to
// earlier code, which loops require.
const backBranchVersion = 4

// applTypeEnum is the TypeEnum value of an ApplicationCall transaction.
const applTypeEnum = 6

// seg is a lowered subgraph: entry receives control, exit is the simple
// block where the subgraph's value (if any) sits on top of the stack. Every
// lowering returns an exit that is a simple block, so callers can always
// chain onward with SetNext.
type seg struct {
	entry, exit ir.BlockID
}

// build carries the state of a single compilation through the pipeline
// stages.
type build struct {
	graph   *ir.Graph
	params  config.Params
	version uint64
	mode    ir.RunMode
	opt     OptimizeOptions
	subs    *subroutineManager
	log     logging.Logger
}

func newBuild(opts CompileOptions, params config.Params, version uint64, log logging.Logger) *build {
	return &build{
		graph:   ir.NewGraph(),
		params:  params,
		version: version,
		mode:    opts.Mode.runMode(),
		opt:     opts.Optimize,
		subs:    newSubroutineManager(),
		log:     log,
	}
}

// spec resolves an opcode name against the target version and mode.
func (b *build) spec(name string) (ir.OpSpec, error) {
	spec, ok := ir.OpsByName[b.version][name]
	if !ok {
		return ir.OpSpec{}, serr.InputError("opcode unavailable at target version",
			"op", name, "version", b.version)
	}
	if spec.Modes&b.mode == 0 {
		return ir.OpSpec{}, serr.InputError("opcode not allowed in this mode",
			"op", name, "mode", b.mode.String())
	}
	return spec, nil
}

// op builds one op after the version and mode gates pass.
func (b *build) op(name string, imm ...string) (ir.Op, error) {
	spec, err := b.spec(name)
	if err != nil {
		return ir.Op{}, err
	}
	return ir.NewOp(spec, imm...), nil
}

// block allocates a simple block holding ops.
func (b *build) block(ops ...ir.Op) seg {
	id := b.graph.NewSimple(ops...)
	return seg{id, id}
}

// opBlock resolves one opcode and wraps it in its own simple block.
func (b *build) opBlock(name string, imm ...string) (seg, error) {
	op, err := b.op(name, imm...)
	if err != nil {
		return seg{}, err
	}
	return b.block(op), nil
}

// join chains two segs, returning the combined one.
func (b *build) join(first, second seg) seg {
	b.graph.SetNext(first.exit, second.entry)
	return seg{first.entry, second.exit}
}

// fieldCheck gates a txn or global field against the target version.
func (b *build) fieldCheck(field string, minVersion uint64) error {
	if b.version < minVersion {
		return serr.InputError("field unavailable at target version",
			"field", field, "fieldVersion", minVersion, "version", b.version)
	}
	return nil
}

// groupIndexCheck gates a static group index against the group size limit.
func (b *build) groupIndexCheck(index uint64) error {
	if index >= uint64(b.params.MaxGroupSize) {
		return serr.InputError("transaction group index out of range",
			"index", index, "maxGroupSize", b.params.MaxGroupSize)
	}
	return nil
}

// requireType checks a child expression's declared type against what its
// parent operator pops.
func requireType(e ast.Expr, want ir.StackType, ctx string) error {
	if !e.Type().Matches(want) {
		return serr.TypeError("operand type mismatch",
			"context", ctx, "got", e.Type().String(), "want", want.String())
	}
	return nil
}

func bytesImm(value []byte) string {
	return "0x" + hex.EncodeToString(value)
}

// lower produces the block subgraph evaluating e. The switch is exhaustive
// over the closed expression set; an unknown node is a builder bug.
func (b *build) lower(e ast.Expr) (seg, error) {
	switch n := e.(type) {
	case *ast.IntConst:
		return b.opBlock("int", strconv.FormatUint(n.Value, 10))

	case *ast.BytesConst:
		return b.opBlock("byte", bytesImm(n.Value))

	case *ast.TemplateVar:
		if n.VarType == ir.StackUint64 {
			return b.opBlock("int", n.Name)
		}
		return b.opBlock("byte", n.Name)

	case *ast.ArgExpr:
		return b.opBlock("arg", strconv.FormatUint(n.Index, 10))

	case *ast.TxnExpr:
		if err := b.fieldCheck(n.Field.Name(), n.Field.MinVersion()); err != nil {
			return seg{}, err
		}
		return b.opBlock("txn", n.Field.Name())

	case *ast.TxnaExpr:
		if err := b.fieldCheck(n.Field.Name(), n.Field.MinVersion()); err != nil {
			return seg{}, err
		}
		return b.opBlock("txna", n.Field.Name(), strconv.FormatUint(n.Index, 10))

	case *ast.GtxnExpr:
		if err := b.groupIndexCheck(n.GroupIndex); err != nil {
			return seg{}, err
		}
		if err := b.fieldCheck(n.Field.Name(), n.Field.MinVersion()); err != nil {
			return seg{}, err
		}
		return b.opBlock("gtxn", strconv.FormatUint(n.GroupIndex, 10), n.Field.Name())

	case *ast.GtxnaExpr:
		if err := b.groupIndexCheck(n.GroupIndex); err != nil {
			return seg{}, err
		}
		if err := b.fieldCheck(n.Field.Name(), n.Field.MinVersion()); err != nil {
			return seg{}, err
		}
		return b.opBlock("gtxna",
			strconv.FormatUint(n.GroupIndex, 10), n.Field.Name(), strconv.FormatUint(n.Index, 10))

	case *ast.ItxnExpr:
		if err := b.fieldCheck(n.Field.Name(), n.Field.MinVersion()); err != nil {
			return seg{}, err
		}
		return b.opBlock("itxn", n.Field.Name())

	case *ast.GitxnExpr:
		if err := b.groupIndexCheck(n.TxnIndex); err != nil {
			return seg{}, err
		}
		if err := b.fieldCheck(n.Field.Name(), n.Field.MinVersion()); err != nil {
			return seg{}, err
		}
		return b.opBlock("gitxn", strconv.FormatUint(n.TxnIndex, 10), n.Field.Name())

	case *ast.GlobalExpr:
		if err := b.fieldCheck(n.Field.Name(), n.Field.MinVersion()); err != nil {
			return seg{}, err
		}
		return b.opBlock("global", n.Field.Name())

	case *ast.UnaryExpr:
		return b.lowerUnary(n)

	case *ast.BinaryExpr:
		return b.lowerBinary(n)

	case *ast.TernaryExpr:
		return b.lowerTernary(n)

	case *ast.NaryExpr:
		return b.lowerNary(n)

	case *ast.IfExpr:
		return b.lowerIf(n)

	case *ast.SeqExpr:
		return b.lowerSeq(n)

	case *ast.AssertExpr:
		return b.lowerAssert(n)

	case *ast.ReturnExpr:
		if err := requireType(n.Value, ir.StackUint64, "Return"); err != nil {
			return seg{}, err
		}
		value, err := b.lower(n.Value)
		if err != nil {
			return seg{}, err
		}
		ret, err := b.opBlock("return")
		if err != nil {
			return seg{}, err
		}
		return b.join(value, ret), nil

	case *ast.WhileExpr:
		return b.lowerWhile(n)

	case *ast.ForExpr:
		return b.lowerFor(n)

	case *ast.ScratchStoreExpr:
		if !n.Value.Type().Typed() {
			return seg{}, serr.TypeError("stored value must have a concrete type",
				"got", n.Value.Type().String())
		}
		value, err := b.lower(n.Value)
		if err != nil {
			return seg{}, err
		}
		spec, err := b.spec("store")
		if err != nil {
			return seg{}, err
		}
		store := b.block(ir.NewSlotOp(spec, n.Slot))
		return b.join(value, store), nil

	case *ast.ScratchLoadExpr:
		if !n.LoadType.Typed() {
			return seg{}, serr.TypeError("loaded value must declare a concrete type",
				"got", n.LoadType.String())
		}
		spec, err := b.spec("load")
		if err != nil {
			return seg{}, err
		}
		return b.block(ir.NewSlotOp(spec, n.Slot)), nil

	case *ast.SubroutineCallExpr:
		return b.subs.lowerCall(b, n)

	case *ast.MethodSignatureExpr:
		selector, err := abi.MethodSelector(n.Signature)
		if err != nil {
			return seg{}, serr.InputError("invalid method signature",
				"signature", n.Signature, "err", err)
		}
		op, err := b.op("byte", bytesImm(selector))
		if err != nil {
			return seg{}, err
		}
		return b.block(op.WithComment(fmt.Sprintf("method %q", n.Signature))), nil

	case *ast.ABIConstExpr:
		encoded, err := abi.Encode(n.TypeStr, n.Value)
		if err != nil {
			return seg{}, serr.InputError("value does not encode under ABI type",
				"type", n.TypeStr, "err", err)
		}
		return b.opBlock("byte", bytesImm(encoded))

	case *ast.MethodReturnExpr:
		return b.lowerMethodReturn(n)

	case *ast.MethodCallExpr:
		return b.lowerMethodCall(n)
	}
	return seg{}, serr.InternalError("unknown expression variant", "expr", e.String())
}

func (b *build) lowerUnary(n *ast.UnaryExpr) (seg, error) {
	spec, err := b.spec(n.OpName)
	if err != nil {
		return seg{}, err
	}
	if err := requireType(n.Child, spec.Arg.Types[0], n.OpName); err != nil {
		return seg{}, err
	}
	child, err := b.lower(n.Child)
	if err != nil {
		return seg{}, err
	}
	return b.join(child, b.block(ir.NewOp(spec))), nil
}

func (b *build) lowerBinary(n *ast.BinaryExpr) (seg, error) {
	spec, err := b.spec(n.OpName)
	if err != nil {
		return seg{}, err
	}
	args := spec.Arg.Types
	if err := requireType(n.Left, args[0], n.OpName); err != nil {
		return seg{}, err
	}
	if err := requireType(n.Right, args[1], n.OpName); err != nil {
		return seg{}, err
	}
	// Comparison ops accept any operand type but require the two sides to
	// agree with each other.
	if args[0] == ir.StackAny && args[1] == ir.StackAny {
		if !n.Left.Type().Typed() || !n.Right.Type().Typed() ||
			!n.Left.Type().Matches(n.Right.Type()) {
			return seg{}, serr.TypeError("operands must share one concrete type",
				"op", n.OpName,
				"left", n.Left.Type().String(), "right", n.Right.Type().String())
		}
	}
	left, err := b.lower(n.Left)
	if err != nil {
		return seg{}, err
	}
	right, err := b.lower(n.Right)
	if err != nil {
		return seg{}, err
	}
	return b.join(b.join(left, right), b.block(ir.NewOp(spec))), nil
}

func (b *build) lowerTernary(n *ast.TernaryExpr) (seg, error) {
	spec, err := b.spec(n.OpName)
	if err != nil {
		return seg{}, err
	}
	operands := []ast.Expr{n.A, n.B, n.C}
	var acc seg
	for i, operand := range operands {
		if err := requireType(operand, spec.Arg.Types[i], n.OpName); err != nil {
			return seg{}, err
		}
	}
	for i, operand := range operands {
		value, err := b.lower(operand)
		if err != nil {
			return seg{}, err
		}
		if i == 0 {
			acc = value
		} else {
			acc = b.join(acc, value)
		}
	}
	return b.join(acc, b.block(ir.NewOp(spec))), nil
}

func (b *build) lowerNary(n *ast.NaryExpr) (seg, error) {
	if len(n.Args) < 2 {
		return seg{}, serr.InputError("chained operator needs at least two operands",
			"op", n.Kind.String(), "operands", len(n.Args))
	}
	if n.Kind == ast.NaryConcat {
		return b.lowerConcat(n)
	}
	return b.lowerShortCircuit(n)
}

func (b *build) lowerConcat(n *ast.NaryExpr) (seg, error) {
	spec, err := b.spec("concat")
	if err != nil {
		return seg{}, err
	}
	for _, arg := range n.Args {
		if err := requireType(arg, ir.StackBytes, "Concat"); err != nil {
			return seg{}, err
		}
	}
	acc, err := b.lower(n.Args[0])
	if err != nil {
		return seg{}, err
	}
	for _, arg := range n.Args[1:] {
		operand, err := b.lower(arg)
		if err != nil {
			return seg{}, err
		}
		acc = b.join(b.join(acc, operand), b.block(ir.NewOp(spec)))
	}
	return acc, nil
}

// lowerShortCircuit lowers And/Or into a conditional chain: each operand's
// value feeds an empty conditional block, and a later operand is reachable
// only while the overall result is still undecided. The two result blocks
// are shared by every decision point.
func (b *build) lowerShortCircuit(n *ast.NaryExpr) (seg, error) {
	for _, arg := range n.Args {
		if err := requireType(arg, ir.StackUint64, n.Kind.String()); err != nil {
			return seg{}, err
		}
	}
	trueBlock, err := b.opBlock("int", "1")
	if err != nil {
		return seg{}, err
	}
	falseBlock, err := b.opBlock("int", "0")
	if err != nil {
		return seg{}, err
	}
	exit := b.block()
	b.graph.SetNext(trueBlock.exit, exit.entry)
	b.graph.SetNext(falseBlock.exit, exit.entry)

	operands := make([]seg, len(n.Args))
	decisions := make([]ir.BlockID, len(n.Args))
	for i, arg := range n.Args {
		operand, err := b.lower(arg)
		if err != nil {
			return seg{}, err
		}
		operands[i] = operand
		decisions[i] = b.graph.NewConditional()
		b.graph.SetNext(operand.exit, decisions[i])
	}
	for i := range n.Args {
		last := i == len(n.Args)-1
		switch {
		case n.Kind == ast.NaryAnd && last:
			b.graph.SetBranches(decisions[i], trueBlock.entry, falseBlock.entry)
		case n.Kind == ast.NaryAnd:
			b.graph.SetBranches(decisions[i], operands[i+1].entry, falseBlock.entry)
		case last: // NaryOr
			b.graph.SetBranches(decisions[i], trueBlock.entry, falseBlock.entry)
		default:
			b.graph.SetBranches(decisions[i], trueBlock.entry, operands[i+1].entry)
		}
	}
	return seg{operands[0].entry, exit.exit}, nil
}

func (b *build) lowerIf(n *ast.IfExpr) (seg, error) {
	if err := requireType(n.Cond, ir.StackUint64, "If condition"); err != nil {
		return seg{}, err
	}
	if n.Else == nil {
		if n.Then.Type() != ir.StackNone {
			return seg{}, serr.TypeError("single-branch conditional must be statement-like",
				"got", n.Then.Type().String())
		}
	} else if n.Then.Type() != n.Else.Type() {
		return seg{}, serr.TypeError("conditional branches must declare one type",
			"then", n.Then.Type().String(), "else", n.Else.Type().String())
	}

	cond, err := b.lower(n.Cond)
	if err != nil {
		return seg{}, err
	}
	decision := b.graph.NewConditional()
	b.graph.SetNext(cond.exit, decision)

	then, err := b.lower(n.Then)
	if err != nil {
		return seg{}, err
	}
	join := b.block()
	b.graph.SetNext(then.exit, join.entry)

	if n.Else == nil {
		b.graph.SetBranches(decision, then.entry, join.entry)
		return seg{cond.entry, join.exit}, nil
	}
	otherwise, err := b.lower(n.Else)
	if err != nil {
		return seg{}, err
	}
	b.graph.SetNext(otherwise.exit, join.entry)
	b.graph.SetBranches(decision, then.entry, otherwise.entry)
	return seg{cond.entry, join.exit}, nil
}

func (b *build) lowerSeq(n *ast.SeqExpr) (seg, error) {
	if len(n.Exprs) == 0 {
		return b.block(), nil
	}
	for _, child := range n.Exprs[:len(n.Exprs)-1] {
		if child.Type() != ir.StackNone {
			return seg{}, serr.TypeError("non-final sequence step must be statement-like",
				"step", child.String(), "got", child.Type().String())
		}
	}
	acc, err := b.lower(n.Exprs[0])
	if err != nil {
		return seg{}, err
	}
	for _, child := range n.Exprs[1:] {
		next, err := b.lower(child)
		if err != nil {
			return seg{}, err
		}
		acc = b.join(acc, next)
	}
	return acc, nil
}

func (b *build) lowerAssert(n *ast.AssertExpr) (seg, error) {
	if err := requireType(n.Cond, ir.StackUint64, "Assert"); err != nil {
		return seg{}, err
	}
	cond, err := b.lower(n.Cond)
	if err != nil {
		return seg{}, err
	}
	if _, ok := ir.OpsByName[b.version]["assert"]; ok {
		check, err := b.opBlock("assert")
		if err != nil {
			return seg{}, err
		}
		return b.join(cond, check), nil
	}
	// Before the assert opcode existed: branch over an err.
	decision := b.graph.NewConditional()
	b.graph.SetNext(cond.exit, decision)
	fail, err := b.opBlock("err")
	if err != nil {
		return seg{}, err
	}
	ok := b.block()
	b.graph.SetBranches(decision, ok.entry, fail.entry)
	return seg{cond.entry, ok.exit}, nil
}

func (b *build) lowerWhile(n *ast.WhileExpr) (seg, error) {
	if b.version < backBranchVersion {
		return seg{}, serr.InputError("loops need a version supporting back branches",
			"version", b.version, "required", backBranchVersion)
	}
	if err := requireType(n.Cond, ir.StackUint64, "While condition"); err != nil {
		return seg{}, err
	}
	if n.Body.Type() != ir.StackNone {
		return seg{}, serr.TypeError("loop body must be statement-like",
			"got", n.Body.Type().String())
	}
	cond, err := b.lower(n.Cond)
	if err != nil {
		return seg{}, err
	}
	decision := b.graph.NewConditional()
	b.graph.SetNext(cond.exit, decision)

	body, err := b.lower(n.Body)
	if err != nil {
		return seg{}, err
	}
	b.graph.SetNext(body.exit, cond.entry) // back-edge
	exit := b.block()
	b.graph.SetBranches(decision, body.entry, exit.entry)
	return seg{cond.entry, exit.exit}, nil
}

func (b *build) lowerFor(n *ast.ForExpr) (seg, error) {
	if b.version < backBranchVersion {
		return seg{}, serr.InputError("loops need a version supporting back branches",
			"version", b.version, "required", backBranchVersion)
	}
	for _, part := range []struct {
		e    ast.Expr
		what string
	}{{n.Start, "loop start"}, {n.Step, "loop step"}, {n.Body, "loop body"}} {
		if part.e.Type() != ir.StackNone {
			return seg{}, serr.TypeError("loop component must be statement-like",
				"component", part.what, "got", part.e.Type().String())
		}
	}
	if err := requireType(n.Cond, ir.StackUint64, "For condition"); err != nil {
		return seg{}, err
	}
	start, err := b.lower(n.Start)
	if err != nil {
		return seg{}, err
	}
	cond, err := b.lower(n.Cond)
	if err != nil {
		return seg{}, err
	}
	b.graph.SetNext(start.exit, cond.entry)
	decision := b.graph.NewConditional()
	b.graph.SetNext(cond.exit, decision)

	body, err := b.lower(n.Body)
	if err != nil {
		return seg{}, err
	}
	step, err := b.lower(n.Step)
	if err != nil {
		return seg{}, err
	}
	b.graph.SetNext(body.exit, step.entry)
	b.graph.SetNext(step.exit, cond.entry) // back-edge
	exit := b.block()
	b.graph.SetBranches(decision, body.entry, exit.entry)
	return seg{start.entry, exit.exit}, nil
}

// lowerMethodReturn logs a bytes-typed return value behind the return-event
// selector. A statement-like value compiles as-is, so void methods can share
// the wrapper.
func (b *build) lowerMethodReturn(n *ast.MethodReturnExpr) (seg, error) {
	if n.Value.Type() == ir.StackNone {
		return b.lower(n.Value)
	}
	if err := requireType(n.Value, ir.StackBytes, "MethodReturn"); err != nil {
		return seg{}, err
	}
	concat, err := b.op("concat")
	if err != nil {
		return seg{}, err
	}
	logOp, err := b.op("log")
	if err != nil {
		return seg{}, err
	}
	prefix, err := b.opBlock("byte", bytesImm(config.ReturnEventSelector[:]))
	if err != nil {
		return seg{}, err
	}
	value, err := b.lower(n.Value)
	if err != nil {
		return seg{}, err
	}
	return b.join(b.join(prefix, value), b.block(concat, logOp)), nil
}

// lowerMethodCall issues an inner-transaction application call carrying the
// method selector and pre-encoded arguments, then reads the logged return
// value back when the method declares one.
func (b *build) lowerMethodCall(n *ast.MethodCallExpr) (seg, error) {
	_, declaredArgs, ret, err := abi.ParseMethodSignature(n.Signature)
	if err != nil {
		return seg{}, serr.InputError("invalid method signature",
			"signature", n.Signature, "err", err)
	}
	if len(n.Args) != len(declaredArgs) {
		return seg{}, serr.InputError("argument count does not match method signature",
			"signature", n.Signature, "got", len(n.Args), "want", len(declaredArgs))
	}
	selector, err := abi.MethodSelector(n.Signature)
	if err != nil {
		return seg{}, serr.InputError("invalid method signature",
			"signature", n.Signature, "err", err)
	}
	if err := requireType(n.AppID, ir.StackUint64, "MethodCall application id"); err != nil {
		return seg{}, err
	}
	for _, arg := range n.Args {
		if err := requireType(arg, ir.StackBytes, "MethodCall argument"); err != nil {
			return seg{}, err
		}
	}

	begin, err := b.opBlock("itxn_begin")
	if err != nil {
		return seg{}, err
	}
	intOp, err := b.op("int", strconv.Itoa(applTypeEnum))
	if err != nil {
		return seg{}, err
	}
	fieldSpec, err := b.spec("itxn_field")
	if err != nil {
		return seg{}, err
	}
	acc := b.join(begin,
		b.block(intOp.WithComment("appl"), ir.NewOp(fieldSpec, "TypeEnum")))

	appID, err := b.lower(n.AppID)
	if err != nil {
		return seg{}, err
	}
	acc = b.join(b.join(acc, appID), b.block(ir.NewOp(fieldSpec, "ApplicationID")))

	selOp, err := b.op("byte", bytesImm(selector))
	if err != nil {
		return seg{}, err
	}
	acc = b.join(acc, b.block(
		selOp.WithComment(fmt.Sprintf("method %q", n.Signature)),
		ir.NewOp(fieldSpec, "ApplicationArgs")))

	for _, arg := range n.Args {
		value, err := b.lower(arg)
		if err != nil {
			return seg{}, err
		}
		acc = b.join(b.join(acc, value), b.block(ir.NewOp(fieldSpec, "ApplicationArgs")))
	}

	zeroFee, err := b.op("int", "0")
	if err != nil {
		return seg{}, err
	}
	submit, err := b.op("itxn_submit")
	if err != nil {
		return seg{}, err
	}
	acc = b.join(acc, b.block(zeroFee, ir.NewOp(fieldSpec, "Fee"), submit))

	if ret == "void" {
		return acc, nil
	}
	if err := b.fieldCheck(ast.TxnLastLog.Name(), ast.TxnLastLog.MinVersion()); err != nil {
		return seg{}, err
	}
	lastLog, err := b.op("itxn", ast.TxnLastLog.Name())
	if err != nil {
		return seg{}, err
	}
	// Strip the 4-byte return-event selector off the logged payload.
	extract, err := b.op("extract", "4", "0")
	if err != nil {
		return seg{}, err
	}
	return b.join(acc, b.block(lastLog, extract)), nil
}
