// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package stat

import (
	"fmt"
	"math"
)

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

func Sum[T Number](samples []T) float64 {
	var total float64
	for _, sample := range samples {
		total += float64(sample)
	}
	return total
}

// Mean returns the arithmetic mean of samples, or 0 if there are none.
func Mean[T Number](samples []T) float64 {
	if len(samples) == 0 {
		return 0
	}
	return Sum(samples) / float64(len(samples))
}

// PowDiffs returns (x - mean)^power for every sample. It's the building block
// of the statistical moments.
func PowDiffs[T Number](samples []T, mean, power float64) []float64 {
	diffs := make([]float64, len(samples))
	for i, sample := range samples {
		diffs[i] = math.Pow(float64(sample)-mean, power)
	}
	return diffs
}

// QuantileSorted returns the q-quantile of already sorted data, linearly
// interpolating between the closest ranks.
func QuantileSorted(sorted []float64, q float64) (float64, error) {
	if err := checkQuantile(q); err != nil {
		return 0, err
	}
	if len(sorted) == 0 {
		return 0, fmt.Errorf("%w: quantile of empty data", ErrInvalidArgument)
	}
	return quantileSorted(sorted, q), nil
}

func quantileSorted(sorted []float64, q float64) float64 {
	idx := q * float64(len(sorted)-1)
	lo, hi := int(math.Floor(idx)), int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo]*(float64(hi)-idx) + sorted[hi]*(idx-float64(lo))
}

func checkQuantile(q float64) error {
	if !(q >= 0.0 && q <= 1.0) {
		return fmt.Errorf("%w: expected q between 0.0 and 1.0, not %v", ErrInvalidArgument, q)
	}
	return nil
}

// Without returns a copy of data with every occurrence of the given sentinel
// values removed. Producers use sentinels such as -99.0 for missing
// measurements.
func Without(data []float64, sentinels ...float64) []float64 {
	out := make([]float64, 0, len(data))
outer:
	for _, v := range data {
		for _, s := range sentinels {
			if v == s {
				continue outer
			}
		}
		out = append(out, v)
	}
	return out
}

// CheckFinite returns an error wrapping ErrInvalidArgument if any sample is
// NaN or infinite.
func CheckFinite(data []float64) error {
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample #%d is not a finite number (%v)", ErrInvalidArgument, i+1, v)
		}
	}
	return nil
}
