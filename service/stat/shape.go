// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package stat

import (
	"fmt"
	"math"
)

type PearsonType int

const (
	PearsonUndefined     PearsonType = -1
	PearsonNormal        PearsonType = 0
	PearsonBeta          PearsonType = 1
	PearsonSymmetricBeta PearsonType = 2
	PearsonGamma         PearsonType = 3
	PearsonOther         PearsonType = 7
)

func (t PearsonType) String() string {
	switch t {
	case PearsonNormal:
		return "normal"
	case PearsonBeta:
		return "beta"
	case PearsonSymmetricBeta:
		return "symmetric beta"
	case PearsonGamma:
		return "gamma"
	case PearsonOther:
		return "other"
	case PearsonUndefined:
		return "undefined"
	}
	return fmt.Sprintf("PearsonType(%d)", int(t))
}

// Skewness is the sample adjusted Fisher-Pearson coefficient:
// sum((x-mean)^3) / ((n-1) * stdDev^3). It's the default value when n <= 1 or
// the standard deviation is 0.
func (s *Samples) Skewness() float64 {
	return s.metric(&s.cache.skewness, func() float64 {
		n, stdDev := len(s.data), s.StdDev()
		if n > 1 && stdDev > 0 {
			return Sum(PowDiffs(s.data, s.Mean(), 3)) / (float64(n-1) * math.Pow(stdDev, 3))
		}
		return s.def
	})
}

// Kurtosis is sum((x-mean)^4) / ((n-1) * stdDev^4). Unlike Skewness, the
// degenerate case yields 0.0 and not the default value.
func (s *Samples) Kurtosis() float64 {
	return s.metric(&s.cache.kurtosis, func() float64 {
		n, stdDev := len(s.data), s.StdDev()
		if n > 1 && stdDev > 0 {
			return Sum(PowDiffs(s.data, s.Mean(), 4)) / (float64(n-1) * math.Pow(stdDev, 4))
		}
		return 0.0
	})
}

// PearsonType classifies the distribution shape from its skewness and
// kurtosis. An error wrapping ErrAlgorithmicGap means no class matched and
// indicates a defect rather than bad input.
// An empty set is PearsonUndefined regardless of the default value, since
// the default is a float and not a class.
func (s *Samples) PearsonType() (PearsonType, error) {
	if len(s.data) == 0 {
		return PearsonUndefined, nil
	}
	res := s.cache.pearson.get(s.calcPearsonType)
	return res.typ, res.err
}

func (s *Samples) calcPearsonType() pearsonResult {
	typ, err := classifyPearson(s.Skewness(), s.Kurtosis(), s.pearsonPrecision)
	return pearsonResult{typ: typ, err: err}
}

// classifyPearson maps beta1 = skewness^2 and beta2 = kurtosis onto a Pearson
// family. Coefficients are rounded to p digits before comparing with zero.
func classifyPearson(skewness, kurtosis float64, p int) (PearsonType, error) {
	beta1 := skewness * skewness
	beta2 := kurtosis

	c0 := 4*beta2 - 3*beta1
	c1 := skewness * (beta2 + 3)
	c2 := 2*beta2 - 3*beta1 - 6

	switch {
	case roundTo(c1, p) == 0:
		switch {
		case roundTo(beta2, p) == 3:
			return PearsonNormal, nil
		case beta2 < 3:
			return PearsonSymmetricBeta, nil
		case beta2 > 3:
			return PearsonOther, nil
		}
	case roundTo(c2, p) == 0:
		return PearsonGamma, nil
	default:
		if k := c1 * c1 / (4 * c0 * c2); k < 0 {
			return PearsonBeta, nil
		}
	}

	return PearsonUndefined, fmt.Errorf("%w: no pearson type for beta1=%v beta2=%v", ErrAlgorithmicGap, beta1, beta2)
}

// roundTo rounds v half away from zero to the given number of decimal digits.
func roundTo(v float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return math.Round(v*pow) / pow
}
