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
	"bytes"
	"encoding/json"

	"github.com/michaeldiamant/pyteal/abi"
	"github.com/michaeldiamant/pyteal/ir"
	"github.com/michaeldiamant/pyteal/serr"
)

// OnCompleteAction is an ApplicationCall on-completion value.
type OnCompleteAction uint64

const (
	// OnCompleteNoOp is a plain application call.
	OnCompleteNoOp OnCompleteAction = iota
	// OnCompleteOptIn allocates local state for the sender.
	OnCompleteOptIn
	// OnCompleteCloseOut deallocates the sender's local state.
	OnCompleteCloseOut
	// OnCompleteClearState forcibly deallocates local state.
	OnCompleteClearState
	// OnCompleteUpdateApplication replaces the application's programs.
	OnCompleteUpdateApplication
	// OnCompleteDeleteApplication removes the application.
	OnCompleteDeleteApplication
)

func (oc OnCompleteAction) String() string {
	switch oc {
	case OnCompleteNoOp:
		return "NoOp"
	case OnCompleteOptIn:
		return "OptIn"
	case OnCompleteCloseOut:
		return "CloseOut"
	case OnCompleteClearState:
		return "ClearState"
	case OnCompleteUpdateApplication:
		return "UpdateApplication"
	case OnCompleteDeleteApplication:
		return "DeleteApplication"
	}
	return "unknown"
}

type routedMethod struct {
	signature string
	name      string
	args      []string
	ret       string
	selector  []byte
	body      Expr
}

type bareCall struct {
	onComplete OnCompleteAction
	action     Expr
}

// Router assembles an approval program and a clear-state program from
// registered ABI methods and bare app call handlers. Method calls dispatch on
// the selector in the first application argument; bare calls dispatch on the
// on-completion value when no arguments are present. Unhandled calls reject.
type Router struct {
	name      string
	methods   []routedMethod
	bareCalls []bareCall
}

// NewRouter returns an empty router for the named contract.
func NewRouter(name string) *Router {
	return &Router{name: name}
}

// AddMethod registers an ABI method under its canonical signature. A method
// returning a value must supply a bytes-typed body holding the ABI encoding
// of the result; a void method must supply a statement-like body. Duplicate
// selectors are rejected.
func (r *Router) AddMethod(signature string, body Expr) error {
	name, args, ret, err := abi.ParseMethodSignature(signature)
	if err != nil {
		return serr.InputError("invalid method signature", "signature", signature, "err", err)
	}
	selector, err := abi.MethodSelector(signature)
	if err != nil {
		return serr.InputError("invalid method signature", "signature", signature, "err", err)
	}
	for _, existing := range r.methods {
		if bytes.Equal(existing.selector, selector) {
			return serr.InputError("selector collision between registered methods",
				"signature", signature, "existing", existing.signature)
		}
	}

	wantBody := ir.StackNone
	if ret != "void" {
		wantBody = ir.StackBytes
	}
	if !body.Type().Matches(wantBody) {
		return serr.TypeError("method body type does not fit the declared return",
			"signature", signature, "got", body.Type(), "want", wantBody)
	}

	r.methods = append(r.methods, routedMethod{
		signature: signature,
		name:      name,
		args:      args,
		ret:       ret,
		selector:  selector,
		body:      body,
	})
	return nil
}

// AddBareCall registers a handler for argument-less calls arriving with the
// given on-completion value. The action must be statement-like; the router
// appends the approval itself.
func (r *Router) AddBareCall(onComplete OnCompleteAction, action Expr) error {
	for _, existing := range r.bareCalls {
		if existing.onComplete == onComplete {
			return serr.InputError("bare call handler already registered",
				"onComplete", onComplete.String())
		}
	}
	if !action.Type().Matches(ir.StackNone) {
		return serr.TypeError("bare call action must be statement-like",
			"onComplete", onComplete.String(), "got", action.Type())
	}
	r.bareCalls = append(r.bareCalls, bareCall{onComplete: onComplete, action: action})
	return nil
}

// BuildProgram assembles the approval and clear-state program trees from the
// registrations made so far. The approval program first dispatches bare
// calls, then methods; anything unhandled rejects. The clear-state program
// runs the ClearState bare handler when one is registered and rejects
// otherwise.
func (r *Router) BuildProgram() (approval, clearState Expr, err error) {
	if len(r.methods) == 0 && len(r.bareCalls) == 0 {
		return nil, nil, serr.InputError("router has no registered handlers", "contract", r.name)
	}

	approval = Reject()
	for i := len(r.methods) - 1; i >= 0; i-- {
		m := r.methods[i]
		var handler Expr
		if m.ret != "void" {
			handler = Seq(MethodReturn(m.body), Approve())
		} else {
			handler = Seq(m.body, Approve())
		}
		// Methods only serve plain calls.
		guarded := Seq(
			Assert(Eq(Txn(TxnOnCompletion), Int(uint64(OnCompleteNoOp)))),
			handler,
		)
		approval = If(
			Eq(Txna(TxnApplicationArgs, 0), Bytes(m.selector)),
			guarded,
			approval,
		)
	}

	bareDispatch := Expr(Reject())
	for i := len(r.bareCalls) - 1; i >= 0; i-- {
		bc := r.bareCalls[i]
		if bc.onComplete == OnCompleteClearState {
			continue
		}
		bareDispatch = If(
			Eq(Txn(TxnOnCompletion), Int(uint64(bc.onComplete))),
			Seq(bc.action, Approve()),
			bareDispatch,
		)
	}
	approval = If(
		Eq(Txn(TxnNumAppArgs), Int(0)),
		bareDispatch,
		approval,
	)

	clearState = Reject()
	for _, bc := range r.bareCalls {
		if bc.onComplete == OnCompleteClearState {
			clearState = Seq(bc.action, Approve())
			break
		}
	}
	return approval, clearState, nil
}

type contractArg struct {
	Type string `json:"type"`
}

type contractReturn struct {
	Type string `json:"type"`
}

type contractMethod struct {
	Name    string         `json:"name"`
	Args    []contractArg  `json:"args"`
	Returns contractReturn `json:"returns"`
}

type contractDescription struct {
	Name    string           `json:"name"`
	Methods []contractMethod `json:"methods"`
}

// Contract renders the registered methods as an ARC-4 contract description.
func (r *Router) Contract() ([]byte, error) {
	desc := contractDescription{
		Name:    r.name,
		Methods: make([]contractMethod, 0, len(r.methods)),
	}
	for _, m := range r.methods {
		cm := contractMethod{
			Name:    m.name,
			Args:    make([]contractArg, 0, len(m.args)),
			Returns: contractReturn{Type: m.ret},
		}
		for _, arg := range m.args {
			cm.Args = append(cm.Args, contractArg{Type: arg})
		}
		desc.Methods = append(desc.Methods, cm)
	}
	return json.MarshalIndent(desc, "", "  ")
}
