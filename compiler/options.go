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

// Package compiler lowers a typed expression tree into TEAL assembly text.
// The pipeline runs in four stages: lowering into a block graph, subroutine
// resolution, optimization (budget top-ups and peephole rewrites), and
// linearization into assembly lines.
package compiler

import (
	"github.com/michaeldiamant/pyteal/config"
	"github.com/michaeldiamant/pyteal/ir"
	"github.com/michaeldiamant/pyteal/logging"
)

// Mode selects the execution context the program compiles for. It decides
// which opcodes are legal and which expression leaves may appear.
type Mode int

const (
	// ModeApplication targets stateful application programs.
	ModeApplication Mode = iota

	// ModeSignature targets stateless logic signature programs.
	ModeSignature
)

func (m Mode) String() string {
	switch m {
	case ModeApplication:
		return "Application"
	case ModeSignature:
		return "Signature"
	}
	return "Unknown"
}

// runMode maps the compilation mode onto the opcode table's mode bitset.
func (m Mode) runMode() ir.RunMode {
	if m == ModeSignature {
		return ir.ModeSig
	}
	return ir.ModeApp
}

// OpUpMode selects how operations costing more than the per-call opcode
// budget obtain additional budget.
type OpUpMode int

const (
	// OpUpExplicit leaves budget management to the caller; the compiler
	// emits costly operations as-is.
	OpUpExplicit OpUpMode = iota

	// OpUpOnCall inserts a budget-raising inner transaction call immediately
	// before each operation whose static cost exceeds the per-call budget.
	// Requires application mode and a version supporting inner transactions.
	OpUpOnCall
)

func (m OpUpMode) String() string {
	switch m {
	case OpUpExplicit:
		return "Explicit"
	case OpUpOnCall:
		return "OnCall"
	}
	return "Unknown"
}

// OptimizeOptions toggles the behavior-preserving rewrite passes.
type OptimizeOptions struct {
	// ScratchSlots permits the peephole pass to eliminate scratch slot
	// traffic: dead stores and single-use store/load pairs.
	ScratchSlots bool

	// OpUp selects the budget top-up strategy.
	OpUp OpUpMode
}

// CompileOptions configures one compilation.
type CompileOptions struct {
	// Mode is the execution context. The zero value is ModeApplication.
	Mode Mode

	// Version is the target program version. Zero means
	// Params.DefaultTealVersion.
	Version uint64

	// Params carries the machine limits. The zero value means
	// config.DefaultParams().
	Params config.Params

	// Optimize toggles the rewrite passes.
	Optimize OptimizeOptions

	// Log receives Debug-level pass traces. Nil means logging.Base().
	Log logging.Logger
}
