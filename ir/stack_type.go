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

package ir

import (
	"fmt"
	"strings"
)

// StackType describes the type of a value on the operand stack, as declared
// by an expression or required by an opcode.
type StackType byte

const (
	// StackNone shows that an expression or op pops or yields nothing.
	StackNone StackType = iota

	// StackAny shows that an expression or op pops or yields any type.
	StackAny

	// StackUint64 shows that an expression or op pops or yields a uint64.
	StackUint64

	// StackBytes shows that an expression or op pops or yields a []byte.
	StackBytes
)

func (st StackType) String() string {
	switch st {
	case StackNone:
		return "none"
	case StackAny:
		return "any"
	case StackUint64:
		return "uint64"
	case StackBytes:
		return "[]byte"
	}
	return "internal error, unknown type"
}

// Typed tells whether the StackType is a specific concrete type.
func (st StackType) Typed() bool {
	switch st {
	case StackUint64, StackBytes:
		return true
	}
	return false
}

// Matches reports whether a value declared as st satisfies a requirement of
// type other. StackAny on either side matches any concrete type; StackNone
// matches only itself.
func (st StackType) Matches(other StackType) bool {
	if st == other {
		return true
	}
	if st == StackNone || other == StackNone {
		return false
	}
	return st == StackAny || other == StackAny
}

// StackTypes is an alias for a list of StackType with syntactic sugar
type StackTypes []StackType

func (st StackTypes) String() string {
	var s = make([]string, len(st))
	for idx, stype := range st {
		s[idx] = stype.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(s, ", "))
}

// parseStackTypes decodes a compact proto signature such as "ii" or "ba".
func parseStackTypes(spec string) StackTypes {
	if spec == "" {
		return nil
	}
	types := make(StackTypes, len(spec))
	for i, letter := range spec {
		switch letter {
		case 'a':
			types[i] = StackAny
		case 'b':
			types[i] = StackBytes
		case 'i':
			types[i] = StackUint64
		case 'x':
			types[i] = StackNone
		default:
			panic(spec)
		}
	}
	return types
}
