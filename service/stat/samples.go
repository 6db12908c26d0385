// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package stat

import (
	"fmt"
	"math"
	"slices"
)

// Samples is a finite set of numeric observations. Derived metrics are
// computed on first access and cached until ClearCache is called.
//
// Samples is not safe for concurrent use.
type Samples struct {
	data []float64
	def  float64

	// shared means data is a caller owned slice that must never be reordered.
	shared    bool
	presorted bool
	// sorted is true when data itself is known to be in ascending order.
	sorted    bool
	sortedBuf []float64

	pearsonPrecision int

	cache metricCache
}

type Option func(s *Samples)

// WithDefault sets the value returned by statistics that are undefined for
// the current data (e.g. any metric of an empty set). Use math.NaN() for
// fail-loud semantics.
func WithDefault(v float64) Option {
	return func(s *Samples) {
		s.def = v
	}
}

// WithSharedData makes the set reference the caller's slice instead of
// copying it. The caller must not touch the slice while the set is alive,
// or must call ClearCache after doing so.
func WithSharedData() Option {
	return func(s *Samples) {
		s.shared = true
	}
}

// WithPresorted tells the set that the data is already in ascending order.
func WithPresorted() Option {
	return func(s *Samples) {
		s.presorted = true
	}
}

// WithPearsonPrecision sets the number of decimal digits the Pearson
// coefficients are rounded to before being compared against zero.
func WithPearsonPrecision(digits int) Option {
	return func(s *Samples) {
		s.pearsonPrecision = digits
	}
}

func New(data []float64, opts ...Option) *Samples {
	s := &Samples{}
	for _, opt := range opts {
		opt(s)
	}
	if s.shared {
		s.data = data
	} else {
		s.data = slices.Clone(data)
	}
	s.sorted = s.presorted
	return s
}

// FromNumbers builds a set out of any numeric slice. The data is always
// converted into a private copy.
func FromNumbers[T Number](data []T, opts ...Option) *Samples {
	values := make([]float64, len(data))
	for i, v := range data {
		values[i] = float64(v)
	}
	s := &Samples{}
	for _, opt := range opts {
		opt(s)
	}
	s.data = values
	s.shared = false
	s.sorted = s.presorted
	return s
}

func (s *Samples) Len() int {
	return len(s.data)
}

// Values returns a copy of the current contents.
func (s *Samples) Values() []float64 {
	return slices.Clone(s.data)
}

func (s *Samples) Default() float64 {
	return s.def
}

// ClearCache drops every cached metric. It must be called after the
// underlying data of a shared set has been modified.
func (s *Samples) ClearCache() {
	s.cache = metricCache{}
	s.sortedBuf = nil
	s.sorted = s.presorted
}

// sortedData returns the data in ascending order. Owned data is sorted in
// place; shared data is sorted into a private buffer.
func (s *Samples) sortedData() []float64 {
	if s.sorted {
		return s.data
	}
	if s.shared {
		if s.sortedBuf == nil {
			s.sortedBuf = slices.Clone(s.data)
			slices.Sort(s.sortedBuf)
		}
		return s.sortedBuf
	}
	slices.Sort(s.data)
	s.sorted = true
	return s.data
}

// Quantile returns the q-quantile of the data, q in [0.0, 1.0].
func (s *Samples) Quantile(q float64) (float64, error) {
	if err := checkQuantile(q); err != nil {
		return 0, err
	}
	if len(s.data) == 0 {
		return s.def, nil
	}
	return quantileSorted(s.sortedData(), q), nil
}

// ZScore returns how many standard deviations value lies from the mean.
// When the standard deviation is 0 the result is 0, +Inf or -Inf depending on
// whether value is equal to, above or below the mean.
func (s *Samples) ZScore(value float64) float64 {
	mean, stdDev := s.Mean(), s.StdDev()
	if stdDev == 0 {
		switch {
		case value == mean:
			return 0
		case value > mean:
			return math.Inf(1)
		case value < mean:
			return math.Inf(-1)
		}
	}
	return (value - mean) / stdDev
}

// TrimRelative removes floor(n*amount) values from each end of the sorted
// data, amount in [0.0, 0.5). It modifies the set in place.
func (s *Samples) TrimRelative(amount float64) error {
	if !(amount >= 0.0 && amount < 0.5) {
		return fmt.Errorf("%w: expected amount between 0.0 and 0.5, not %v", ErrInvalidArgument, amount)
	}

	n := len(s.data)
	k := int(float64(n) * amount)
	if k == 0 {
		return nil
	}

	trimmed := s.sortedData()[k : n-k]
	if s.shared {
		trimmed = slices.Clone(trimmed)
	}
	s.data = trimmed
	s.shared = false
	s.ClearCache()
	s.sorted = true

	return nil
}
