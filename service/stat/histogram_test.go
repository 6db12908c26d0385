// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package stat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinBoundaries(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		require.Equal(t, []float64{0}, New(nil).BinBoundaries(0))
	})

	t.Run("fewer than four samples", func(t *testing.T) {
		require.Equal(t, []float64{1, 2}, New([]float64{1, 3}).BinBoundaries(0))
		require.Equal(t, []float64{1, 1.5, 2, 2.5}, New([]float64{1, 3}).BinBoundaries(4))
	})

	t.Run("explicit count", func(t *testing.T) {
		require.Equal(t, []float64{0, 2.5, 5, 7.5}, New([]float64{0, 1, 5, 8, 10}).BinBoundaries(4))
	})

	t.Run("freedman diaconis", func(t *testing.T) {
		bounds := New(intRange(1001)).BinBoundaries(0)
		require.Len(t, bounds, 11)
		require.Equal(t, 0.0, bounds[0])
		for _, b := range bounds {
			require.Less(t, b, 1000.0)
		}
	})

	t.Run("constant data", func(t *testing.T) {
		require.Equal(t, []float64{5}, New([]float64{5, 5, 5, 5, 5}).BinBoundaries(0))
	})

	t.Run("zero iqr", func(t *testing.T) {
		bounds := New([]float64{1, 1, 1, 1, 1, 1, 1, 10}).BinBoundaries(0)
		require.Equal(t, []float64{1, 3.25, 5.5, 7.75}, bounds)
	})

	t.Run("tiny iqr", func(t *testing.T) {
		data := append(make([]float64, 0, 1002), intRange(1000)...)
		for i := range data {
			data[i] = 1 + float64(i)*1e-12
		}
		data = append(data, 1e6)
		bounds := New(data).BinBoundaries(0)
		require.LessOrEqual(t, len(bounds), MaxAutoBins+1)
	})

	t.Run("heavy tail is capped", func(t *testing.T) {
		// Healthy IQR, but one outlier stretches the range to 1e9.
		bounds := New(append(intRange(1000), 1e9)).BinBoundaries(0)
		require.Len(t, bounds, MaxAutoBins)
		require.Equal(t, 1e6, bounds[1]-bounds[0])
	})
}

func TestHistogram(t *testing.T) {
	t.Run("few samples", func(t *testing.T) {
		h, err := New([]float64{1, 2, 3}).Histogram()
		require.NoError(t, err)
		require.Equal(t, Histogram{{1, 1}, {1.6, 1}, {2.3, 1}}, h)
	})

	t.Run("bin count", func(t *testing.T) {
		h, err := New([]float64{1, 2, 3, 4, 5}).Histogram(WithBinCount(2))
		require.NoError(t, err)
		require.Equal(t, Histogram{{1, 2}, {3, 3}}, h)
	})

	t.Run("explicit bounds", func(t *testing.T) {
		h, err := New([]float64{1, 2, 3, 4, 5}).Histogram(WithBinBounds([]float64{4, 2}))
		require.NoError(t, err)
		require.Equal(t, Histogram{{1, 1}, {2, 2}, {4, 2}}, h)
		require.Equal(t, []float64{1, 2, 2, 4, 4}, h.Raw())
	})

	t.Run("empty bins are kept", func(t *testing.T) {
		h, err := New([]float64{1, 1, 1, 1, 1, 1, 1, 10}).Histogram()
		require.NoError(t, err)
		require.Equal(t, Histogram{{1, 7}, {3.2, 0}, {5.5, 0}, {7.7, 1}}, h)
	})

	t.Run("max in last bin", func(t *testing.T) {
		h, err := New([]float64{0, 10, 10, 10}).Histogram(WithBinCount(5))
		require.NoError(t, err)
		require.Equal(t, 3, h[len(h)-1].Count)
		require.Equal(t, 4, h.Total())
	})

	t.Run("bin digits", func(t *testing.T) {
		h, err := New([]float64{0.123, 0.456, 0.789, 1}).Histogram(WithBinCount(3), WithBinDigits(2))
		require.NoError(t, err)
		require.Len(t, h, 3)
		require.Equal(t, 0.12, h[0].Lower)
		require.Equal(t, 4, h.Total())

		h, err = New([]float64{0.123, 0.456, 0.789, 1}).Histogram(WithBinCount(3), WithBinDigits(0))
		require.NoError(t, err)
		require.Equal(t, Histogram{{0, 4}}, h)
	})

	t.Run("huge values", func(t *testing.T) {
		s := New([]float64{1e300, 2e300, 3e300, 4e300, 5e300})
		h, err := s.Histogram(WithBinDigits(10))
		require.NoError(t, err)
		require.Equal(t, 5, h.Total())
		require.Equal(t, 1e300, h[0].Lower)
		for _, b := range h {
			require.False(t, math.IsInf(b.Lower, 0))
		}

		h, err = New([]float64{-1.7e308, 1e308, 1.7e308}).Histogram()
		require.NoError(t, err)
		require.Equal(t, 3, h.Total())
		require.Equal(t, -1.7e308, h[0].Lower)

		h, err = New([]float64{-1.7e308, -1, 0, 1, 1.7e308}).Histogram()
		require.NoError(t, err)
		require.Len(t, h, 4)
		require.Equal(t, []int{1, 1, 2, 1}, []int{h[0].Count, h[1].Count, h[2].Count, h[3].Count})
	})

	t.Run("range 1001", func(t *testing.T) {
		h, err := New(intRange(1001)).Histogram()
		require.NoError(t, err)
		require.NotEmpty(t, h)
		require.Equal(t, 1001, h.Total())
		require.Len(t, h.Raw(), 1001)
	})

	t.Run("empty", func(t *testing.T) {
		h, err := New(nil).Histogram()
		require.NoError(t, err)
		require.Equal(t, Histogram{{0, 0}}, h)
		require.Empty(t, h.Raw())
	})

	t.Run("invalid", func(t *testing.T) {
		s := New([]float64{1, 2, 3, 4})
		_, err := s.Histogram(WithBinCount(-1))
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = s.Histogram(WithBinBounds([]float64{1, math.NaN()}))
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = s.Histogram(WithBinBounds([]float64{1, math.Inf(1)}))
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = s.Histogram(WithBinCount(2), WithBinBounds([]float64{1, 2}))
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = s.Histogram(WithBinDigits(-1))
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = s.Histogram(WithBinDigits(MaxBinDigits + 1))
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}
