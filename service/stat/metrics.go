// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package stat

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

func (s *Samples) Count() int {
	return len(s.data)
}

func (s *Samples) Mean() float64 {
	return s.metric(&s.cache.mean, func() float64 {
		return Mean(s.data)
	})
}

func (s *Samples) Min() float64 {
	return s.metric(&s.cache.min, func() float64 {
		if s.sorted {
			return s.data[0]
		}
		return floats.Min(s.data)
	})
}

func (s *Samples) Max() float64 {
	return s.metric(&s.cache.max, func() float64 {
		if s.sorted {
			return s.data[len(s.data)-1]
		}
		return floats.Max(s.data)
	})
}

func (s *Samples) Median() float64 {
	return s.metric(&s.cache.median, func() float64 {
		return quantileSorted(s.sortedData(), 0.5)
	})
}

// IQR is the inter-quartile range, Q3 - Q1.
func (s *Samples) IQR() float64 {
	return s.metric(&s.cache.iqr, func() float64 {
		sorted := s.sortedData()
		return quantileSorted(sorted, 0.75) - quantileSorted(sorted, 0.25)
	})
}

// Trimean is (Q1 + 2*median + Q3) / 4.
func (s *Samples) Trimean() float64 {
	return s.metric(&s.cache.trimean, func() float64 {
		sorted := s.sortedData()
		q1 := quantileSorted(sorted, 0.25)
		q2 := quantileSorted(sorted, 0.5)
		q3 := quantileSorted(sorted, 0.75)
		return (q1 + 2*q2 + q3) / 4.0
	})
}

// Variance is the population variance: the divisor is n.
func (s *Samples) Variance() float64 {
	return s.metric(&s.cache.variance, func() float64 {
		return Mean(PowDiffs(s.data, s.Mean(), 2))
	})
}

func (s *Samples) StdDev() float64 {
	return s.metric(&s.cache.stdDev, func() float64 {
		return math.Sqrt(s.Variance())
	})
}

// MAD is the median absolute deviation from the median.
func (s *Samples) MAD() float64 {
	return s.metric(&s.cache.mad, func() float64 {
		median := s.Median()
		devs := make([]float64, len(s.data))
		for i, v := range s.data {
			devs[i] = math.Abs(v - median)
		}
		slices.Sort(devs)
		return quantileSorted(devs, 0.5)
	})
}

// RelStdDev is the standard deviation divided by the absolute mean, or the
// default value when the mean is 0.
func (s *Samples) RelStdDev() float64 {
	return s.metric(&s.cache.relStdDev, func() float64 {
		absMean := math.Abs(s.Mean())
		if absMean == 0 {
			return s.def
		}
		return s.StdDev() / absMean
	})
}
