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

package abi

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/michaeldiamant/pyteal/testpartitioning"
)

func TestMethodSelector(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	sel, err := MethodSelector("add(uint64,uint64)uint64")
	require.NoError(t, err)
	require.Len(t, sel, 4)

	again, err := MethodSelector("add(uint64,uint64)uint64")
	require.NoError(t, err)
	require.Equal(t, sel, again)

	other, err := MethodSelector("add(uint64,uint64)void")
	require.NoError(t, err)
	require.NotEqual(t, sel, other, "selector covers the return type")

	_, err = MethodSelector("addXuint64,uint64)uint64")
	require.Error(t, err)
}

func TestParseMethodSignature(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	name, args, ret, err := ParseMethodSignature("swap(uint64,(byte,bool),byte[])void")
	require.NoError(t, err)
	require.Equal(t, "swap", name)
	require.Equal(t, []string{"uint64", "(byte,bool)", "byte[]"}, args)
	require.Equal(t, "void", ret)

	name, args, ret, err = ParseMethodSignature("noop()uint64")
	require.NoError(t, err)
	require.Equal(t, "noop", name)
	require.Empty(t, args)
	require.Equal(t, "uint64", ret)

	for _, bad := range []string{
		"",
		"()uint64",
		"f(uint64",
		"f(uint64)",
		"f(uint64)notatype",
		"f(uint64,)void",
		"f(uint64,notatype)void",
	} {
		_, _, _, err := ParseMethodSignature(bad)
		require.Error(t, err, "signature %q", bad)
	}
}

func TestEncodeDecodeUint64(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	encoded, err := Encode("uint64", uint64(5))
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 5}, encoded)

	_, err = Encode("notatype", uint64(5))
	require.Error(t, err)

	_, err = Decode("notatype", encoded)
	require.Error(t, err)
}

// TestEncodeRoundTrip checks decode(encode(x)) by re-encoding the decoded
// value, which sidesteps the codec's concrete decoded representation.
func TestEncodeRoundTrip(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		typeStr := rapid.SampledFrom([]string{"uint64", "uint32", "bool"}).Draw(t, "type")
		var value interface{}
		switch typeStr {
		case "uint64":
			value = rapid.Uint64().Draw(t, "value")
		case "uint32":
			value = rapid.Uint32().Draw(t, "value")
		case "bool":
			value = rapid.Bool().Draw(t, "value")
		}
		encoded, err := Encode(typeStr, value)
		require.NoError(t, err)

		decoded, err := Decode(typeStr, encoded)
		require.NoError(t, err)

		again, err := Encode(typeStr, decoded)
		require.NoError(t, err)
		require.Equal(t, encoded, again)
	})
}
