// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package stat

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

const (
	DefaultBinDigits = 1
	MaxBinDigits     = 15
	// MaxAutoBins caps the number of bins chosen by the Freedman-Diaconis
	// rule, which otherwise explodes when the inter-quartile range is tiny.
	MaxAutoBins = 1000
)

// Bin is a histogram bucket starting at Lower and extending up to the next
// bin's lower boundary. The last bin also holds the maximum.
type Bin struct {
	Lower float64 `json:"lower" msgpack:"lower"`
	Count int     `json:"count" msgpack:"count"`
}

type Histogram []Bin

// Total returns the number of samples counted across all bins.
func (h Histogram) Total() int {
	var total int
	for _, b := range h {
		total += b.Count
	}
	return total
}

// Raw expands the histogram into a flat sequence where each bin's lower
// boundary is repeated Count times. The original values can't be recovered
// from it.
func (h Histogram) Raw() []float64 {
	raw := make([]float64, 0, h.Total())
	for _, b := range h {
		for i := 0; i < b.Count; i++ {
			raw = append(raw, b.Lower)
		}
	}
	return raw
}

type histogramConfig struct {
	count  int
	bounds []float64
	digits int
}

type HistogramOption func(cfg *histogramConfig)

// WithBinCount requests count equal-width bins.
func WithBinCount(count int) HistogramOption {
	return func(cfg *histogramConfig) {
		cfg.count = count
	}
}

// WithBinBounds sets explicit bin lower boundaries. The data minimum is
// added as the first boundary if it lies below all of them.
func WithBinBounds(bounds []float64) HistogramOption {
	return func(cfg *histogramConfig) {
		cfg.bounds = bounds
	}
}

// WithBinDigits sets the number of decimal digits boundaries are floored to.
func WithBinDigits(digits int) HistogramOption {
	return func(cfg *histogramConfig) {
		cfg.digits = digits
	}
}

func (cfg histogramConfig) IsValid() error {
	if cfg.count < 0 {
		return fmt.Errorf("%w: invalid bin count %d", ErrInvalidArgument, cfg.count)
	}
	if cfg.digits < 0 || cfg.digits > MaxBinDigits {
		return fmt.Errorf("%w: expected bin digits between 0 and %d, not %d", ErrInvalidArgument, MaxBinDigits, cfg.digits)
	}
	if cfg.count > 0 && len(cfg.bounds) > 0 {
		return fmt.Errorf("%w: bin count and bin bounds are mutually exclusive", ErrInvalidArgument)
	}
	for _, b := range cfg.bounds {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: bins expected finite bin boundaries, not %v", ErrInvalidArgument, cfg.bounds)
		}
	}
	return nil
}

// Histogram counts the samples into fixed-width bins. Without options the
// boundaries come from BinBoundaries(0). Every resolved boundary is returned,
// including the ones of empty bins.
func (s *Samples) Histogram(opts ...HistogramOption) (Histogram, error) {
	cfg := histogramConfig{
		digits: DefaultBinDigits,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.IsValid(); err != nil {
		return nil, err
	}

	var bounds []float64
	if len(cfg.bounds) > 0 {
		bounds = slices.Clone(cfg.bounds)
		slices.Sort(bounds)
		if len(s.data) > 0 && s.Min() < bounds[0] {
			bounds = append([]float64{s.Min()}, bounds...)
		}
	} else {
		bounds = s.BinBoundaries(cfg.count)
	}

	factor := math.Pow(10, float64(cfg.digits))
	for i, b := range bounds {
		// Past 2^53 flooring is the identity, and huge bounds would
		// overflow to ±Inf.
		if x := b * factor; !math.IsInf(x, 0) {
			bounds[i] = math.Floor(x) / factor
		}
	}
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	counts := make([]int, len(bounds))
	for _, v := range s.data {
		// Index of the last boundary <= v.
		idx := sort.Search(len(bounds), func(i int) bool { return bounds[i] > v }) - 1
		if idx < 0 {
			continue
		}
		counts[idx]++
	}

	h := make(Histogram, len(bounds))
	for i, b := range bounds {
		h[i] = Bin{Lower: b, Count: counts[i]}
	}

	return h, nil
}

// BinBoundaries returns the lower boundaries of fixed-width bins spanning the
// data. With fewer than 4 samples it makes count (or n) equal-width bins. With
// more samples and count <= 0 the Freedman-Diaconis rule picks the width.
// The automatic bin count never exceeds MaxAutoBins: when the
// Freedman-Diaconis width would yield more bins, the width is widened to
// (max-min)/MaxAutoBins, for heavy-tailed data too.
func (s *Samples) BinBoundaries(count int) []float64 {
	n := len(s.data)
	if n == 0 {
		return []float64{0.0}
	}

	lo, hi := s.Min(), s.Max()
	switch {
	case n < 4:
		if count <= 0 {
			count = n
		}
		return equalWidthBounds(lo, hi, count)
	case count <= 0:
		return s.freedmanDiaconisBounds(lo, hi)
	default:
		return equalWidthBounds(lo, hi, count)
	}
}

func (s *Samples) freedmanDiaconisBounds(lo, hi float64) []float64 {
	n := len(s.data)
	dx := 2 * s.IQR() / math.Cbrt(float64(n))
	if !(dx > 0) || math.IsInf(dx, 0) || math.IsInf(hi-lo, 0) {
		// Constant or near constant data has no usable inter-quartile range,
		// and a range past MaxFloat64 can't be divided by a width.
		if hi == lo {
			return []float64{lo}
		}
		return equalWidthBounds(lo, hi, sturgesCount(n))
	}

	dx = max(dx, (hi-lo)/MaxAutoBins)
	binCount := max(1, int(math.Ceil((hi-lo)/dx)))
	bounds := make([]float64, 0, binCount+1)
	for i := 0; i <= binCount; i++ {
		if b := lo + dx*float64(i); b < hi {
			bounds = append(bounds, b)
		}
	}
	return bounds
}

func sturgesCount(n int) int {
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

func equalWidthBounds(lo, hi float64, count int) []float64 {
	dx := (hi - lo) / float64(count)
	bounds := make([]float64, count)
	for i := range bounds {
		if math.IsInf(dx, 0) {
			// The range overflows, interpolate between the ends instead.
			t := float64(i) / float64(count)
			bounds[i] = lo*(1-t) + hi*t
			continue
		}
		bounds[i] = lo + dx*float64(i)
	}
	return bounds
}
