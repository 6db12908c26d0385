// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package stat

import (
	"slices"
)

// AllModes returns every value sharing the highest occurrence count, in
// ascending order.
func (s *Samples) AllModes() []float64 {
	if len(s.data) == 0 {
		return nil
	}
	return slices.Clone(s.cache.allModes.get(func() []float64 {
		modes, _ := s.modes()
		return modes
	}))
}

// Mode is like AllModes but returns an empty slice when every distinct value
// occurs the same number of times, since then no value is more frequent than
// another.
func (s *Samples) Mode() []float64 {
	if len(s.data) == 0 {
		return nil
	}
	return slices.Clone(s.cache.mode.get(func() []float64 {
		modes, uniform := s.modes()
		if uniform {
			return []float64{}
		}
		return modes
	}))
}

func (s *Samples) modes() (modes []float64, uniform bool) {
	counts := make(map[float64]int, len(s.data))
	for _, v := range s.data {
		counts[v]++
	}

	maxCount, minCount := 0, len(s.data)
	for _, c := range counts {
		maxCount = max(maxCount, c)
		minCount = min(minCount, c)
	}

	for v, c := range counts {
		if c == maxCount {
			modes = append(modes, v)
		}
	}
	slices.Sort(modes)

	return modes, minCount == maxCount
}
