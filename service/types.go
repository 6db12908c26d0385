// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"github.com/mattermost/spcd/service/stat"
)

// SamplesRequest carries the sample set shared by every statistics request.
type SamplesRequest struct {
	Data []float64 `json:"data"`
	// Sentinel values to drop before computing. When nil the service wide
	// default list applies.
	Exclude []float64 `json:"exclude,omitempty"`
	// Value returned by undefined statistics. Defaults to 0.
	Default *Float `json:"default,omitempty"`
	// Strict selects NaN as default value and takes precedence over Default.
	Strict bool `json:"strict,omitempty"`
}

func (r *SamplesRequest) samplesRequest() *SamplesRequest {
	return r
}

type DescribeRequest struct {
	SamplesRequest
	Quantiles []float64 `json:"quantiles,omitempty"`
	// One of dict (default), list or text.
	Format string `json:"format,omitempty"`
}

type DescribeResponse struct {
	// An object for dict, a list of [key, value] pairs for list and a string
	// for text.
	Report any `json:"report"`
}

type HistogramRequest struct {
	SamplesRequest
	Bins      int       `json:"bins,omitempty"`
	Bounds    []float64 `json:"bounds,omitempty"`
	BinDigits *int      `json:"bin_digits,omitempty"`
	Raw       bool      `json:"raw,omitempty"`
}

type HistogramResponse struct {
	Bins  stat.Histogram `json:"bins"`
	Total int            `json:"total"`
	Raw   []float64      `json:"raw,omitempty"`
}

type QuantileRequest struct {
	SamplesRequest
	Q []float64 `json:"q"`
}

type QuantileValue struct {
	Q     float64 `json:"q"`
	Value Float   `json:"value"`
}

type QuantileResponse struct {
	Quantiles []QuantileValue `json:"quantiles"`
}

type ZScoreRequest struct {
	SamplesRequest
	Values []float64 `json:"values"`
}

type ZScoreResponse struct {
	ZScores []Float `json:"zscores"`
}

type TrimRequest struct {
	SamplesRequest
	// Fraction in [0.0, 0.5) of samples removed from each end.
	Amount    float64   `json:"amount"`
	Quantiles []float64 `json:"quantiles,omitempty"`
	Format    string    `json:"format,omitempty"`
}

type TrimResponse struct {
	Removed int `json:"removed"`
	Report  any `json:"report"`
}

type CapabilityRequest struct {
	SamplesRequest
	LSL float64 `json:"lsl"`
	USL float64 `json:"usl"`
}

type CapabilityResponse struct {
	LSL    float64 `json:"lsl"`
	USL    float64 `json:"usl"`
	Cp     Float   `json:"cp"`
	Cpk    Float   `json:"cpk"`
	Mean   Float   `json:"mean"`
	StdDev Float   `json:"std_dev"`
}

type ShapeRequest struct {
	SamplesRequest
}

type ShapeResponse struct {
	Skewness    Float  `json:"skewness"`
	Kurtosis    Float  `json:"kurtosis"`
	PearsonType int    `json:"pearson_type"`
	PearsonName string `json:"pearson_name"`
}

type SummaryRequest struct {
	SamplesRequest
}

type SummaryResponse struct {
	Count     int     `json:"count"`
	Mean      Float   `json:"mean"`
	Median    Float   `json:"median"`
	Min       Float   `json:"min"`
	Max       Float   `json:"max"`
	IQR       Float   `json:"iqr"`
	Trimean   Float   `json:"trimean"`
	Variance  Float   `json:"variance"`
	StdDev    Float   `json:"std_dev"`
	MAD       Float   `json:"mad"`
	RelStdDev Float   `json:"rel_std_dev"`
	Mode      []Float `json:"mode"`
	AllModes  []Float `json:"all_modes"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id"`
}
