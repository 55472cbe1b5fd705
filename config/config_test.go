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

package config

import (
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaeldiamant/pyteal/testpartitioning"
)

func TestDefaultParams(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	p := DefaultParams()
	require.Equal(t, uint64(MinTealVersion), p.MinTealVersion)
	require.Equal(t, uint64(MaxTealVersion), p.MaxTealVersion)
	require.Equal(t, uint64(DefaultTealVersion), p.DefaultTealVersion)
	require.Equal(t, MaxGroupSize, p.MaxGroupSize)
	require.Equal(t, NumSlots, p.NumSlots)
	require.Equal(t, MaxAppProgramCost, p.MaxAppProgramCost)

	require.LessOrEqual(t, p.MinTealVersion, p.DefaultTealVersion)
	require.LessOrEqual(t, p.DefaultTealVersion, p.MaxTealVersion)
}

func TestParamsIsZero(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	require.True(t, Params{}.IsZero())
	require.False(t, DefaultParams().IsZero())

	// Any single populated limit makes the value explicit.
	require.False(t, Params{NumSlots: NumSlots}.IsZero())
}

func TestReturnEventSelector(t *testing.T) {
	testpartitioning.PartitionTest(t)
	t.Parallel()

	digest := sha512.Sum512_256([]byte("return"))
	require.Equal(t, digest[:4], ReturnEventSelector[:])
}
