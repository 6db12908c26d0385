// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package stat

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	FormatDict = "dict"
	FormatList = "list"
	FormatText = "text"
)

var DefaultQuantiles = []float64{0.25, 0.5, 0.75}

type ReportItem struct {
	Key   string
	Value any
}

// Report is an ordered summary of a sample set: count, mean, std_dev, mode,
// kurtosis, skewness, mad, min, the requested quantiles and max.
type Report []ReportItem

// Describe builds a Report with the given quantiles, DefaultQuantiles if
// none are passed.
func (s *Samples) Describe(quantiles []float64) (Report, error) {
	if len(quantiles) == 0 {
		quantiles = DefaultQuantiles
	}

	qItems := make([]ReportItem, 0, len(quantiles))
	for _, q := range quantiles {
		val, err := s.Quantile(q)
		if err != nil {
			return nil, err
		}
		qItems = append(qItems, ReportItem{Key: FormatFloat(q), Value: val})
	}

	r := Report{
		{"count", s.Count()},
		{"mean", s.Mean()},
		{"std_dev", s.StdDev()},
		{"mode", s.Mode()},
		{"kurtosis", s.Kurtosis()},
		{"skewness", s.Skewness()},
		{"mad", s.MAD()},
		{"min", s.Min()},
	}
	r = append(r, qItems...)
	r = append(r, ReportItem{"max", s.Max()})

	return r, nil
}

// DescribeAs builds a Report and renders it in the given format.
func (s *Samples) DescribeAs(quantiles []float64, format string) (any, error) {
	if err := CheckFormat(format); err != nil {
		return nil, err
	}
	r, err := s.Describe(quantiles)
	if err != nil {
		return nil, err
	}
	return r.Render(format)
}

// Render returns the report as a map[string]any (dict), the Report itself
// (list) or a string (text). Go maps are unordered, so callers that need the
// metrics in report order should use the list format.
func (r Report) Render(format string) (any, error) {
	if err := CheckFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatList:
		return r, nil
	case FormatText:
		return r.Text(), nil
	default:
		return r.Map(), nil
	}
}

func (r Report) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, item := range r {
		m[item.Key] = item.Value
	}
	return m
}

// Text renders one "key:value" line per item with keys padded to ten columns.
func (r Report) Text() string {
	lines := make([]string, len(r))
	for i, item := range r {
		lines[i] = fmt.Sprintf("%-10s%s", item.Key+":", formatValue(item.Value))
	}
	return strings.Join(lines, "\n")
}

// CheckFormat returns an error wrapping ErrInvalidArgument for unknown
// report formats.
func CheckFormat(format string) error {
	switch format {
	case FormatDict, FormatList, FormatText:
		return nil
	}
	return fmt.Errorf("%w: invalid format for describe, expected one of %q/%q/%q, not %q",
		ErrInvalidArgument, FormatDict, FormatList, FormatText, format)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case float64:
		return FormatFloat(val)
	case []float64:
		parts := make([]string, len(val))
		for i, f := range val {
			parts[i] = FormatFloat(f)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}

// FormatFloat formats v with the shortest representation that round-trips,
// always keeping a decimal point for integral values (4 -> "4.0").
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	var str string
	if abs := math.Abs(v); v == 0 || (abs >= 1e-4 && abs < 1e16) {
		str = strconv.FormatFloat(v, 'f', -1, 64)
	} else {
		str = strconv.FormatFloat(v, 'g', -1, 64)
	}
	if !strings.ContainsAny(str, ".e") {
		str += ".0"
	}
	return str
}
