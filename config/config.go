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

// Package config holds the fixed resource limits of the target machine that
// the compiler validates against. The limits are exposed both as build-time
// constants and as a Params value so the pipeline can be exercised with
// varied limits in tests.
package config

const (
	// MinTealVersion is the lowest program version the compiler will target.
	MinTealVersion = 2

	// MaxTealVersion is the highest program version the compiler will target.
	MaxTealVersion = 7

	// DefaultTealVersion is used when CompileOptions does not name a version.
	DefaultTealVersion = MinTealVersion

	// MaxGroupSize is the maximum number of transactions in a transaction
	// group. Static group indices must stay below it.
	MaxGroupSize = 16

	// NumSlots is the number of scratch slots available to a program.
	NumSlots = 256

	// MaxAppProgramCost is the opcode budget granted per application call.
	// Operations costing more than one budget increment need an OpUp call.
	MaxAppProgramCost = 700
)

// ReturnEventSelector prefixes logged ABI method return values. It is the
// first four bytes of SHA-512/256("return").
var ReturnEventSelector = [4]byte{0x15, 0x1f, 0x7c, 0x75}

// Params carries the machine limits consumed by a single compilation.
type Params struct {
	MinTealVersion     uint64
	MaxTealVersion     uint64
	DefaultTealVersion uint64
	MaxGroupSize       int
	NumSlots           int
	MaxAppProgramCost  int
}

// DefaultParams returns the limits of the production target machine.
func DefaultParams() Params {
	return Params{
		MinTealVersion:     MinTealVersion,
		MaxTealVersion:     MaxTealVersion,
		DefaultTealVersion: DefaultTealVersion,
		MaxGroupSize:       MaxGroupSize,
		NumSlots:           NumSlots,
		MaxAppProgramCost:  MaxAppProgramCost,
	}
}

// IsZero reports whether p is the zero value, meaning the caller supplied no
// explicit limits.
func (p Params) IsZero() bool {
	return p == Params{}
}
