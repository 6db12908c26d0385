// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package stat

type cached[T any] struct {
	val T
	ok  bool
}

func (c *cached[T]) get(calc func() T) T {
	if !c.ok {
		c.val = calc()
		c.ok = true
	}
	return c.val
}

type pearsonResult struct {
	typ PearsonType
	err error
}

// metricCache holds one slot per derived metric. The zero value is an
// empty cache.
type metricCache struct {
	mean      cached[float64]
	min       cached[float64]
	max       cached[float64]
	median    cached[float64]
	iqr       cached[float64]
	trimean   cached[float64]
	variance  cached[float64]
	stdDev    cached[float64]
	mad       cached[float64]
	relStdDev cached[float64]
	skewness  cached[float64]
	kurtosis  cached[float64]
	pearson   cached[pearsonResult]
	mode      cached[[]float64]
	allModes  cached[[]float64]
}

// metric returns the default value for an empty set, or the cached value of
// slot, computing it with calc on a miss.
func (s *Samples) metric(slot *cached[float64], calc func() float64) float64 {
	if len(s.data) == 0 {
		return s.def
	}
	return slot.get(calc)
}
