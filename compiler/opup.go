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
	"strconv"

	"github.com/michaeldiamant/pyteal/ir"
	"github.com/michaeldiamant/pyteal/serr"
)

// innerTxnVersion is the first program version with inner transactions,
// which the budget top-up call issues.
const innerTxnVersion = 5

// opUpSubName labels the compiler-created budget top-up subroutine.
const opUpSubName = "opup"

// opUpPass inserts budget top-up calls for operations whose static cost
// exceeds the per-call opcode budget. In OnCall mode each such operation
// gets exactly one callsub inserted immediately before it, targeting a
// shared subroutine that issues a zero-fee inner application call; the pass
// is idempotent because an existing top-up call is recognized and kept. In
// Explicit mode the pass does nothing.
type opUpPass struct {
	b     *build
	subID ir.SubID
	built bool
}

func (p *opUpPass) run() error {
	if p.b.opt.OpUp != OpUpOnCall {
		return nil
	}
	for id := ir.BlockID(0); int(id) < p.b.graph.Len(); id++ {
		if err := p.rewriteBlock(p.b.graph.Block(id)); err != nil {
			return err
		}
	}
	return nil
}

func (p *opUpPass) rewriteBlock(block *ir.Block) error {
	var (
		out     []ir.Op
		changed bool
	)
	for i, op := range block.Ops {
		if op.Spec.Cost > p.b.params.MaxAppProgramCost {
			if i > 0 && p.isTopUp(block.Ops[i-1]) {
				// Already topped up by a previous run.
			} else {
				topUp, err := p.topUpOp()
				if err != nil {
					return serr.Extend(err, "costlyOp", op.Spec.Name)
				}
				out = append(out, topUp)
				changed = true
				p.b.log.Debugf("opup: raising budget before %s (cost %d)", op.Spec.Name, op.Spec.Cost)
			}
		}
		out = append(out, op)
	}
	if changed {
		block.Ops = out
	}
	return nil
}

// isTopUp reports whether op is a budget top-up call from an earlier run.
func (p *opUpPass) isTopUp(op ir.Op) bool {
	if op.Spec.Name != "callsub" || op.Sub == ir.NoSub {
		return false
	}
	subs := p.b.subs.all()
	return int(op.Sub) < len(subs) && subs[op.Sub].name == opUpSubName
}

// topUpOp returns the callsub raising the budget, creating the shared
// subroutine on first use.
func (p *opUpPass) topUpOp() (ir.Op, error) {
	if p.b.mode != ir.ModeApp {
		return ir.Op{}, serr.InputError("budget top-up needs application mode")
	}
	if p.b.version < innerTxnVersion {
		return ir.Op{}, serr.InputError("budget top-up needs inner transaction support",
			"version", p.b.version, "required", innerTxnVersion)
	}
	callSpec, err := p.b.spec("callsub")
	if err != nil {
		return ir.Op{}, err
	}
	if !p.built {
		if err := p.buildSub(); err != nil {
			return ir.Op{}, err
		}
	}
	return ir.NewSubOp(callSpec, p.subID, opUpSubName), nil
}

// buildSub lays down the top-up body: an inner application call with zero
// fee, whose execution grants the caller additional opcode budget.
func (p *opUpPass) buildSub() error {
	names := []string{"itxn_begin", "itxn_field", "itxn_submit", "retsub", "int"}
	specs := make(map[string]ir.OpSpec, len(names))
	for _, name := range names {
		spec, err := p.b.spec(name)
		if err != nil {
			return err
		}
		specs[name] = spec
	}
	entry := p.b.graph.NewSimple(
		ir.NewOp(specs["itxn_begin"]),
		ir.NewOp(specs["int"], strconv.Itoa(applTypeEnum)).WithComment("appl"),
		ir.NewOp(specs["itxn_field"], "TypeEnum"),
		ir.NewOp(specs["int"], "0"),
		ir.NewOp(specs["itxn_field"], "Fee"),
		ir.NewOp(specs["itxn_submit"]),
		ir.NewOp(specs["retsub"]),
	)
	p.subID = p.b.subs.register(opUpSubName, entry)
	p.built = true
	return nil
}
