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
	"sort"
	"strings"
)

// LogicVersion defines default assembler and max target versions
const LogicVersion = 7

// backBranchEnabledVersion is the first version of TEAL where branches could
// go back, which is also the version that introduced callsub/retsub.
const backBranchEnabledVersion = 4

// innerTxnEnabledVersion is the first version that allowed inner
// transactions, and with them the log and itxn opcode family.
const innerTxnEnabledVersion = 5

// RunMode is a bitset of the modes an opcode may run in.
type RunMode uint64

const (
	// ModeSig covers stateless logic signature programs.
	ModeSig RunMode = 1 << iota

	// ModeApp covers stateful application programs.
	ModeApp
)

// ModeAny is all modes
const ModeAny = ModeSig | ModeApp

func (r RunMode) String() string {
	switch r {
	case ModeSig:
		return "Signature"
	case ModeApp:
		return "Application"
	case ModeAny:
		return "Any"
	}
	return "Unknown"
}

type typedList struct {
	Types StackTypes
}

// Proto describes the "stack behavior" of an opcode, what it pops as
// arguments and pushes onto the stack as return values.
type Proto struct {
	Arg    typedList // what gets popped from the stack
	Return typedList // what gets pushed to the stack
}

func proto(signature string) Proto {
	parts := strings.Split(signature, ":")
	if len(parts) != 2 {
		panic(signature)
	}
	return Proto{
		Arg:    typedList{parseStackTypes(parts[0])},
		Return: typedList{parseStackTypes(parts[1])},
	}
}

// OpSpec defines an opcode
type OpSpec struct {
	Name string
	Proto
	Version uint64 // TEAL version opcode introduced
	Cost    int    // static opcode budget cost
	Modes   RunMode
}

// deadens is true iff the opcode unconditionally ends or leaves the
// enclosing instruction sequence.
func (spec *OpSpec) deadens() bool {
	switch spec.Name {
	case "b", "retsub", "err", "return":
		return true
	default:
		return false
	}
}

// Pure is true iff the opcode only pushes a value derived from static
// context, so a push immediately followed by a pop can be cancelled.
func (spec *OpSpec) Pure() bool {
	switch spec.Name {
	case "int", "byte", "pushint", "pushbytes", "load", "txn", "txna",
		"gtxn", "gtxna", "global", "arg", "dup":
		return true
	default:
		return false
	}
}

// OpSpecs is the table of operations the compiler can emit. The table is
// consulted during lowering (to pick a mnemonic legal at the target version
// and mode) and during optimization (to find costly operations).
//
// `int` and `byte` are assembler pseudo-ops that expand into constant block
// loads; they are listed here with the baseline version so the compiler can
// treat them uniformly.
var OpSpecs = []OpSpec{
	{"err", proto(":x"), 1, 1, ModeAny},
	{"sha256", proto("b:b"), 1, 7, ModeAny},
	{"keccak256", proto("b:b"), 1, 26, ModeAny},
	{"sha512_256", proto("b:b"), 1, 9, ModeAny},

	// Cost of these opcodes increases in TEAL version 2 based on measured
	// performance. Same opcode for different TEAL versions is OK.
	{"sha256", proto("b:b"), 2, 35, ModeAny},
	{"keccak256", proto("b:b"), 2, 130, ModeAny},
	{"sha512_256", proto("b:b"), 2, 45, ModeAny},

	{"ed25519verify", proto("bbb:i"), 1, 1900, ModeSig},
	{"ed25519verify", proto("bbb:i"), 5, 1900, ModeAny},
	{"ecdsa_verify", proto("bbbbb:i"), 5, 1700, ModeAny},
	{"ecdsa_pk_decompress", proto("b:bb"), 5, 650, ModeAny},
	{"ecdsa_pk_recover", proto("bibb:bb"), 5, 2000, ModeAny},

	{"+", proto("ii:i"), 1, 1, ModeAny},
	{"-", proto("ii:i"), 1, 1, ModeAny},
	{"/", proto("ii:i"), 1, 1, ModeAny},
	{"*", proto("ii:i"), 1, 1, ModeAny},
	{"<", proto("ii:i"), 1, 1, ModeAny},
	{">", proto("ii:i"), 1, 1, ModeAny},
	{"<=", proto("ii:i"), 1, 1, ModeAny},
	{">=", proto("ii:i"), 1, 1, ModeAny},
	{"&&", proto("ii:i"), 1, 1, ModeAny},
	{"||", proto("ii:i"), 1, 1, ModeAny},
	{"==", proto("aa:i"), 1, 1, ModeAny},
	{"!=", proto("aa:i"), 1, 1, ModeAny},
	{"!", proto("i:i"), 1, 1, ModeAny},
	{"len", proto("b:i"), 1, 1, ModeAny},
	{"itob", proto("i:b"), 1, 1, ModeAny},
	{"btoi", proto("b:i"), 1, 1, ModeAny},
	{"%", proto("ii:i"), 1, 1, ModeAny},
	{"|", proto("ii:i"), 1, 1, ModeAny},
	{"&", proto("ii:i"), 1, 1, ModeAny},
	{"^", proto("ii:i"), 1, 1, ModeAny},
	{"~", proto("i:i"), 1, 1, ModeAny},
	{"mulw", proto("ii:ii"), 1, 1, ModeAny},
	{"addw", proto("ii:ii"), 2, 1, ModeAny},
	{"divmodw", proto("iiii:iiii"), 4, 20, ModeAny},

	// Constant loading pseudo-ops. The assembler expands these into
	// intcblock/bytecblock references.
	{"int", proto(":i"), 1, 1, ModeAny},
	{"byte", proto(":b"), 1, 1, ModeAny},
	{"pushbytes", proto(":b"), 3, 1, ModeAny},
	{"pushint", proto(":i"), 3, 1, ModeAny},

	{"arg", proto(":b"), 1, 1, ModeSig},
	{"args", proto("i:b"), 5, 1, ModeSig},
	{"txn", proto(":a"), 1, 1, ModeAny},
	{"global", proto(":a"), 1, 1, ModeAny},
	{"gtxn", proto(":a"), 1, 1, ModeAny},
	{"load", proto(":a"), 1, 1, ModeAny},
	{"store", proto("a:"), 1, 1, ModeAny},
	{"txna", proto(":a"), 2, 1, ModeAny},
	{"gtxna", proto(":a"), 2, 1, ModeAny},
	{"gtxns", proto("i:a"), 3, 1, ModeAny},
	{"gtxnsa", proto("i:a"), 3, 1, ModeAny},
	{"gload", proto(":a"), 4, 1, ModeApp},
	{"gloads", proto("i:a"), 4, 1, ModeApp},
	{"loads", proto("i:a"), 5, 1, ModeAny},
	{"stores", proto("ia:"), 5, 1, ModeAny},

	{"bnz", proto("i:"), 1, 1, ModeAny},
	{"bz", proto("i:"), 2, 1, ModeAny},
	{"b", proto(":"), 2, 1, ModeAny},
	{"return", proto("i:x"), 2, 1, ModeAny},
	{"assert", proto("i:"), 3, 1, ModeAny},
	{"pop", proto("a:"), 1, 1, ModeAny},
	{"dup", proto("a:aa"), 1, 1, ModeAny},
	{"dup2", proto("aa:aaaa"), 2, 1, ModeAny},
	{"dig", proto("a:aa"), 3, 1, ModeAny},
	{"swap", proto("aa:aa"), 3, 1, ModeAny},
	{"select", proto("aai:a"), 3, 1, ModeAny},
	{"cover", proto("a:a"), 5, 1, ModeAny},
	{"uncover", proto("a:a"), 5, 1, ModeAny},

	// byteslice processing / StringOps
	{"concat", proto("bb:b"), 2, 1, ModeAny},
	{"substring", proto("b:b"), 2, 1, ModeAny},
	{"substring3", proto("bii:b"), 2, 1, ModeAny},
	{"getbit", proto("ai:i"), 3, 1, ModeAny},
	{"setbit", proto("aii:a"), 3, 1, ModeAny},
	{"getbyte", proto("bi:i"), 3, 1, ModeAny},
	{"setbyte", proto("bii:b"), 3, 1, ModeAny},
	{"extract", proto("b:b"), 5, 1, ModeAny},
	{"extract3", proto("bii:b"), 5, 1, ModeAny},
	{"extract_uint16", proto("bi:i"), 5, 1, ModeAny},
	{"extract_uint32", proto("bi:i"), 5, 1, ModeAny},
	{"extract_uint64", proto("bi:i"), 5, 1, ModeAny},

	{"balance", proto("i:i"), 2, 1, ModeApp},
	{"app_opted_in", proto("ii:i"), 2, 1, ModeApp},
	{"app_local_get", proto("ib:a"), 2, 1, ModeApp},
	{"app_local_get_ex", proto("iib:ai"), 2, 1, ModeApp},
	{"app_global_get", proto("b:a"), 2, 1, ModeApp},
	{"app_global_get_ex", proto("ib:ai"), 2, 1, ModeApp},
	{"app_local_put", proto("iba:"), 2, 1, ModeApp},
	{"app_global_put", proto("ba:"), 2, 1, ModeApp},
	{"app_local_del", proto("ib:"), 2, 1, ModeApp},
	{"app_global_del", proto("b:"), 2, 1, ModeApp},
	{"asset_holding_get", proto("ii:ai"), 2, 1, ModeApp},
	{"asset_params_get", proto("i:ai"), 2, 1, ModeApp},
	{"app_params_get", proto("i:ai"), 5, 1, ModeApp},
	{"acct_params_get", proto("a:ai"), 6, 1, ModeApp},
	{"min_balance", proto("i:i"), 3, 1, ModeApp},

	{"ed25519verify_bare", proto("bbb:i"), 7, 1900, ModeAny},

	// "Function oriented"
	{"callsub", proto(":"), 4, 1, ModeAny},
	{"retsub", proto(":"), 4, 1, ModeAny},

	// More math
	{"shl", proto("ii:i"), 4, 1, ModeAny},
	{"shr", proto("ii:i"), 4, 1, ModeAny},
	{"sqrt", proto("i:i"), 4, 4, ModeAny},
	{"bitlen", proto("a:i"), 4, 1, ModeAny},
	{"exp", proto("ii:i"), 4, 1, ModeAny},
	{"expw", proto("ii:ii"), 4, 10, ModeAny},
	{"bsqrt", proto("b:b"), 6, 40, ModeAny},
	{"divw", proto("iii:i"), 6, 1, ModeAny},
	{"sha3_256", proto("b:b"), 7, 130, ModeAny},

	{"bn256_add", proto("bb:b"), 7, 70, ModeAny},
	{"bn256_scalar_mul", proto("bb:b"), 7, 970, ModeAny},
	{"bn256_pairing", proto("bb:i"), 7, 8700, ModeAny},

	// Byteslice math.
	{"b+", proto("bb:b"), 4, 10, ModeAny},
	{"b-", proto("bb:b"), 4, 10, ModeAny},
	{"b/", proto("bb:b"), 4, 20, ModeAny},
	{"b*", proto("bb:b"), 4, 20, ModeAny},
	{"b<", proto("bb:i"), 4, 1, ModeAny},
	{"b>", proto("bb:i"), 4, 1, ModeAny},
	{"b<=", proto("bb:i"), 4, 1, ModeAny},
	{"b>=", proto("bb:i"), 4, 1, ModeAny},
	{"b==", proto("bb:i"), 4, 1, ModeAny},
	{"b!=", proto("bb:i"), 4, 1, ModeAny},
	{"b%", proto("bb:b"), 4, 20, ModeAny},
	{"b|", proto("bb:b"), 4, 6, ModeAny},
	{"b&", proto("bb:b"), 4, 6, ModeAny},
	{"b^", proto("bb:b"), 4, 6, ModeAny},
	{"b~", proto("b:b"), 4, 4, ModeAny},
	{"bzero", proto("i:b"), 4, 1, ModeAny},

	// AVM "effects"
	{"log", proto("b:"), 5, 1, ModeApp},
	{"itxn_begin", proto(":"), 5, 1, ModeApp},
	{"itxn_field", proto("a:"), 5, 1, ModeApp},
	{"itxn_submit", proto(":"), 5, 1, ModeApp},
	{"itxn", proto(":a"), 5, 1, ModeApp},
	{"itxna", proto(":a"), 5, 1, ModeApp},
	{"itxn_next", proto(":"), 6, 1, ModeApp},
	{"gitxn", proto(":a"), 6, 1, ModeApp},
	{"gitxna", proto(":a"), 6, 1, ModeApp},

	// Dynamic indexing
	{"txnas", proto("i:a"), 5, 1, ModeAny},
	{"gtxnas", proto("i:a"), 5, 1, ModeAny},
	{"gtxnsas", proto("ii:a"), 5, 1, ModeAny},
}

// OpsByName map for each version, mapping opcode name to OpSpec
var OpsByName [LogicVersion + 1]map[string]OpSpec

// Migration from TEAL v1 to TEAL v2 and onward: build a per-version table by
// copying the lower version's opcodes and overwriting names respecified at
// the current version.
func init() {
	OpsByName[0] = make(map[string]OpSpec, 256)
	OpsByName[1] = make(map[string]OpSpec, 256)
	for _, oi := range OpSpecs {
		if oi.Version == 1 {
			cp := oi
			cp.Version = 0
			OpsByName[0][oi.Name] = cp
			OpsByName[1][oi.Name] = oi
		}
	}
	for v := uint64(2); v <= LogicVersion; v++ {
		OpsByName[v] = make(map[string]OpSpec, 256)
		for opName, oi := range OpsByName[v-1] {
			OpsByName[v][opName] = oi
		}
		for _, oi := range OpSpecs {
			if oi.Version == v {
				OpsByName[v][oi.Name] = oi
			}
		}
	}
}

// OpcodesByVersion returns the list of opcodes available at a specific
// version of TEAL, sorted by name for stable iteration.
func OpcodesByVersion(version uint64) []OpSpec {
	if version > LogicVersion {
		version = LogicVersion
	}
	result := make([]OpSpec, 0, len(OpsByName[version]))
	for _, spec := range OpsByName[version] {
		result = append(result, spec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
