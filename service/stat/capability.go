// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package stat

import (
	"fmt"
	"math"
)

// Capability holds the process capability indices of a sample set against a
// pair of lower and upper tolerance limits (LSL, USL).
type Capability struct {
	LSL float64 `json:"lsl" msgpack:"lsl"`
	USL float64 `json:"usl" msgpack:"usl"`
	Cp  float64 `json:"cp" msgpack:"cp"`
	Cpk float64 `json:"cpk" msgpack:"cpk"`
}

// Capability computes Cp = (usl-lsl)/6σ and
// Cpk = min(usl-mean, mean-lsl)/3σ using the population standard deviation.
// Both indices are the default value when σ is 0.
func (s *Samples) Capability(lsl, usl float64) (Capability, error) {
	if math.IsNaN(lsl) || math.IsNaN(usl) || !(usl > lsl) {
		return Capability{}, fmt.Errorf("%w: expected lsl < usl, got lsl=%v usl=%v", ErrInvalidArgument, lsl, usl)
	}

	c := Capability{
		LSL: lsl,
		USL: usl,
		Cp:  s.def,
		Cpk: s.def,
	}

	stdDev := s.StdDev()
	if len(s.data) == 0 || stdDev == 0 || math.IsNaN(stdDev) {
		return c, nil
	}

	mean := s.Mean()
	c.Cp = (usl - lsl) / (6 * stdDev)
	c.Cpk = min(usl-mean, mean-lsl) / (3 * stdDev)

	return c, nil
}
