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
	"github.com/michaeldiamant/pyteal/config"
	"github.com/michaeldiamant/pyteal/ir"
	"github.com/michaeldiamant/pyteal/logging"
	"github.com/michaeldiamant/pyteal/serr"
)

// Compile lowers root into TEAL assembly text. The returned program starts
// with a #pragma version line and contains no trailing newline. Any failure
// surfaces as a serr compile error wrapping the stage-specific cause, so
// callers can classify it with serr.IsKind.
func Compile(root ast.Expr, opts CompileOptions) (string, error) {
	text, err := compile(root, opts)
	if err != nil {
		return "", serr.Compile(err)
	}
	return text, nil
}

func compile(root ast.Expr, opts CompileOptions) (string, error) {
	if root == nil {
		return "", serr.InputError("nil program")
	}
	params := opts.Params
	if params.IsZero() {
		params = config.DefaultParams()
	}
	version := opts.Version
	if version == 0 {
		version = params.DefaultTealVersion
	}
	if version < params.MinTealVersion || version > params.MaxTealVersion ||
		version > ir.LogicVersion {
		return "", serr.InputError("target version out of range",
			"version", version,
			"min", params.MinTealVersion, "max", params.MaxTealVersion)
	}
	// A program either leaves a uint64 approval value on the stack or is
	// statement-like and exits through Return nodes. An any-typed root is
	// rejected; wrap it so the declared type is concrete.
	if root.Type() != ir.StackUint64 && root.Type() != ir.StackNone {
		return "", serr.TypeError("program must leave a uint64 result or exit explicitly",
			"got", root.Type().String())
	}
	log := opts.Log
	if log == nil {
		log = logging.Base()
	}

	b := newBuild(opts, params, version, log)
	main, err := b.lower(root)
	if err != nil {
		return "", err
	}
	if err := b.graph.Validate(); err != nil {
		return "", err
	}

	protected := map[ir.BlockID]bool{main.entry: true}
	for _, info := range b.subs.all() {
		protected[info.entry] = true
	}
	b.normalize(protected)

	opUp := &opUpPass{b: b}
	if err := opUp.run(); err != nil {
		return "", err
	}
	if err := b.runPeephole(); err != nil {
		return "", err
	}
	if err := b.graph.Validate(); err != nil {
		return "", err
	}
	return flatten(b, main.entry)
}
