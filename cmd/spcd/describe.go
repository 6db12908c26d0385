// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattermost/spcd/service/stat"
)

type describeOptions struct {
	quantiles []float64
	exclude   []float64
	histogram bool
	strict    bool
}

func newDescribeOptions(quantiles, exclude string, histogram, strict bool) (describeOptions, error) {
	opts := describeOptions{
		histogram: histogram,
		strict:    strict,
	}

	var err error
	if opts.quantiles, err = parseFloatList(quantiles); err != nil {
		return opts, fmt.Errorf("invalid quantiles: %w", err)
	}
	if opts.exclude, err = parseFloatList(exclude); err != nil {
		return opts, fmt.Errorf("invalid exclude values: %w", err)
	}

	return opts, nil
}

// parseFloatList parses a comma separated list of numbers. An empty string
// yields a nil slice.
func parseFloatList(list string) ([]float64, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, nil
	}

	parts := strings.Split(list, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// readSamples reads whitespace separated finite numbers from r.
func readSamples(r io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var samples []float64
	for scanner.Scan() {
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sample #%d: %w", len(samples)+1, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid sample #%d: %q is not a finite number", len(samples)+1, scanner.Text())
		}
		samples = append(samples, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}

	return samples, nil
}

func runDescribe(r io.Reader, w io.Writer, opts describeOptions) error {
	data, err := readSamples(r)
	if err != nil {
		return err
	}

	var sOpts []stat.Option
	if opts.strict {
		sOpts = append(sOpts, stat.WithDefault(math.NaN()))
	}
	samples := stat.New(stat.Without(data, opts.exclude...), append(sOpts, stat.WithSharedData())...)

	report, err := samples.Describe(opts.quantiles)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, report.Text()); err != nil {
		return err
	}

	if !opts.histogram || samples.Len() == 0 {
		return nil
	}

	hist, err := samples.Histogram()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "histogram:"); err != nil {
		return err
	}
	for _, bin := range hist {
		if _, err := fmt.Fprintf(w, "  %-12s%d\n", stat.FormatFloat(bin.Lower), bin.Count); err != nil {
			return err
		}
	}

	return nil
}
