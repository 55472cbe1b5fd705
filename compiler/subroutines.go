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
	"github.com/michaeldiamant/pyteal/ast"
	"github.com/michaeldiamant/pyteal/ir"
	"github.com/michaeldiamant/pyteal/serr"
)

// subInfo is the compilation state of one subroutine body. The entry block
// is allocated before the body is lowered so recursive call sites can be
// emitted while the body is still in progress.
type subInfo struct {
	def        *ast.SubroutineDefinition // nil for compiler-created bodies
	name       string
	entry      ir.BlockID
	lowered    bool
	inProgress bool
	recursive  bool
}

// subroutineManager memoizes one lowered body per SubroutineDefinition
// identity. Every call site of a definition shares that body's entry block.
type subroutineManager struct {
	ids   map[*ast.SubroutineDefinition]ir.SubID
	infos []*subInfo
}

func newSubroutineManager() *subroutineManager {
	return &subroutineManager{ids: make(map[*ast.SubroutineDefinition]ir.SubID)}
}

// get returns the state for def, allocating an id and an entry block on
// first sight.
func (m *subroutineManager) get(b *build, def *ast.SubroutineDefinition) (ir.SubID, *subInfo) {
	if id, ok := m.ids[def]; ok {
		return id, m.infos[id]
	}
	id := ir.SubID(len(m.infos))
	info := &subInfo{def: def, name: def.Name(), entry: b.graph.NewSimple()}
	m.ids[def] = id
	m.infos = append(m.infos, info)
	return id, info
}

// register records a compiler-created subroutine whose body was built
// directly as blocks.
func (m *subroutineManager) register(name string, entry ir.BlockID) ir.SubID {
	id := ir.SubID(len(m.infos))
	m.infos = append(m.infos, &subInfo{name: name, entry: entry, lowered: true})
	return id
}

// all returns every subroutine in id order.
func (m *subroutineManager) all() []*subInfo {
	return m.infos
}

// lowerCall lowers one call site: argument values are stored into the
// definition's parameter slots, then control transfers with callsub. The
// body is lowered on first call and shared afterwards.
func (m *subroutineManager) lowerCall(b *build, call *ast.SubroutineCallExpr) (seg, error) {
	def := call.Def
	callSpec, err := b.spec("callsub")
	if err != nil {
		return seg{}, err
	}
	if def.Body() == nil {
		return seg{}, serr.InputError("subroutine has no body", "subroutine", def.Name())
	}
	params := def.ParamTypes()
	if len(call.Args) != len(params) {
		return seg{}, serr.TypeError("argument count does not match subroutine signature",
			"subroutine", def.Name(), "got", len(call.Args), "want", len(params))
	}
	for i, arg := range call.Args {
		if !arg.Type().Typed() || !arg.Type().Matches(params[i]) {
			return seg{}, serr.TypeError("argument type does not match subroutine parameter",
				"subroutine", def.Name(), "param", i,
				"got", arg.Type().String(), "want", params[i].String())
		}
	}

	id, info := m.get(b, def)
	switch {
	case info.inProgress:
		// A call site inside the body being lowered: recursion, direct or
		// mutual. Parameters live in fixed scratch slots, so a recursive
		// frame would overwrite its caller's arguments.
		info.recursive = true
		if len(params) > 0 {
			return seg{}, serr.InputError("recursive subroutine with parameters is not supported",
				"subroutine", def.Name())
		}
	case !info.lowered:
		if err := m.lowerBody(b, def, info); err != nil {
			return seg{}, err
		}
	}

	callBlock := b.block(ir.NewSubOp(callSpec, id, def.Name()))
	if len(call.Args) == 0 {
		return callBlock, nil
	}
	storeSpec, err := b.spec("store")
	if err != nil {
		return seg{}, err
	}
	var acc seg
	for i, arg := range call.Args {
		value, err := b.lower(arg)
		if err != nil {
			return seg{}, err
		}
		bind := b.join(value, b.block(ir.NewSlotOp(storeSpec, def.ParamSlot(i))))
		if i == 0 {
			acc = bind
		} else {
			acc = b.join(acc, bind)
		}
	}
	return b.join(acc, callBlock), nil
}

// lowerBody lowers the body once, chains it off the pre-allocated entry
// block, and appends the retsub returning control to the caller.
func (m *subroutineManager) lowerBody(b *build, def *ast.SubroutineDefinition, info *subInfo) error {
	if !def.Body().Type().Matches(def.ReturnType()) {
		return serr.TypeError("body type does not match declared return type",
			"subroutine", def.Name(),
			"got", def.Body().Type().String(), "want", def.ReturnType().String())
	}
	retSpec, err := b.spec("retsub")
	if err != nil {
		return err
	}
	info.inProgress = true
	body, err := b.lower(def.Body())
	info.inProgress = false
	if err != nil {
		return err
	}
	b.graph.SetNext(info.entry, body.entry)
	if !b.graph.Block(body.exit).LastOpDeadens() {
		b.graph.Append(body.exit, ir.NewOp(retSpec))
	}
	info.lowered = true
	b.log.Debugf("lowered subroutine %s (entry block %d)", def.Name(), info.entry)
	return nil
}
