// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package props

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeBoundedStatistics(t *testing.T) {
	s := MakeBoundedStatistics(5)
	require.False(t, s.IsUnknown())
	require.False(t, s.IsUnbounded())
	require.Equal(t, 5.0, s.RowCount)
	require.Equal(t, 0.0, s.Rate)
	require.Equal(t, 5.0, s.Window)

	// An exact zero row count is a definite estimate, not unknown.
	zero := MakeBoundedStatistics(0)
	require.False(t, zero.IsUnknown())
	require.Equal(t, 0.0, zero.RowCount)

	// Negative inputs are a defect upstream; the constructor clamps.
	require.Equal(t, 0.0, MakeBoundedStatistics(-3).RowCount)
}

func TestMakeUnboundedStatistics(t *testing.T) {
	s := MakeUnboundedStatistics(2, 30)
	require.True(t, s.IsUnbounded())
	require.Equal(t, 60.0, s.RowCount)
	require.Equal(t, 2.0, s.Rate)
	require.Equal(t, 30.0, s.Window)
}

func TestUnknownSentinel(t *testing.T) {
	var s Statistics
	require.True(t, s.IsUnknown())

	// Every combinator poisons on unknown input.
	require.True(t, s.ApplySelectivity(MakeSelectivity(0.5)).IsUnknown())
	require.True(t, s.Add(MakeBoundedStatistics(5)).IsUnknown())
	require.True(t, MakeBoundedStatistics(5).Add(s).IsUnknown())
}

func TestApplySelectivity(t *testing.T) {
	t.Run("bounded", func(t *testing.T) {
		s := MakeBoundedStatistics(100).ApplySelectivity(MakeSelectivity(0.15))
		require.Equal(t, 15.0, s.RowCount)
		require.Equal(t, 0.0, s.Rate)
		// For bounded data the window tracks the row count.
		require.Equal(t, 15.0, s.Window)
	})

	t.Run("unbounded keeps rate", func(t *testing.T) {
		s := MakeUnboundedStatistics(2, 30).ApplySelectivity(MakeSelectivity(0.25))
		require.Equal(t, 15.0, s.RowCount)
		require.Equal(t, 2.0, s.Rate)
		require.Equal(t, 7.5, s.Window)
		// RowCount stays consistent with Rate * Window.
		require.InEpsilon(t, s.Rate*s.Window, s.RowCount, 1e-9)
	})

	t.Run("monotone under conjunction", func(t *testing.T) {
		base := MakeBoundedStatistics(1000)
		one := base.ApplySelectivity(MakeSelectivity(0.15))
		two := one.ApplySelectivity(MakeSelectivity(0.25))
		require.Less(t, two.RowCount, one.RowCount)
		require.Less(t, one.RowCount, base.RowCount)
		require.Equal(t, base.RowCount, base.ApplySelectivity(OneSelectivity).RowCount)
	})
}

func TestStatisticsAdd(t *testing.T) {
	bounded := MakeBoundedStatistics(5).Add(MakeBoundedStatistics(7))
	require.Equal(t, 12.0, bounded.RowCount)
	require.Equal(t, 0.0, bounded.Rate)
	require.Equal(t, 12.0, bounded.Window)

	mixed := MakeBoundedStatistics(5).Add(MakeUnboundedStatistics(2, 30))
	require.Equal(t, 65.0, mixed.RowCount)
	require.Equal(t, 2.0, mixed.Rate)
}

func TestStatisticsString(t *testing.T) {
	require.Equal(t, "[rows=5, rate=0, window=5]", MakeBoundedStatistics(5).String())
	require.Equal(t, "[rows=60, rate=2, window=30]", MakeUnboundedStatistics(2, 30).String())
	require.Equal(t, "[unknown]", Statistics{}.String())
}

func TestSelectivityRange(t *testing.T) {
	require.Equal(t, 1.0, MakeSelectivity(1.5).AsFloat())
	require.Equal(t, epsilon, MakeSelectivity(0).AsFloat())
	require.Equal(t, epsilon, MakeSelectivity(-1).AsFloat())
	require.Equal(t, 0.15, MakeSelectivity(0.15).AsFloat())

	// Long products bottom out at epsilon instead of reaching zero.
	s := MakeSelectivity(1e-6)
	for i := 0; i < 10; i++ {
		s.Multiply(MakeSelectivity(1e-6))
	}
	require.Equal(t, epsilon, s.AsFloat())

	require.Equal(t, 0.5, MakeSelectivityFromFraction(1, 2).AsFloat())
	require.Equal(t, 1.0, MakeSelectivityFromFraction(3, 2).AsFloat())
}
