// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/mattermost/spcd/service/api"
	"github.com/mattermost/spcd/service/stat"
)

type statRequest interface {
	samplesRequest() *SamplesRequest
}

// statHandler decodes a request of type T, builds its sample set and hands
// both to compute. Everything else (auth, errors, metrics, auditing) is
// common to all the statistics endpoints.
func statHandler[T any, PT interface {
	*T
	statRequest
}](s *Service, name string, compute func(samples *stat.Samples, req PT) (any, error)) api.HandleFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}

		data := newHTTPData(r)
		defer s.httpAudit(name, data, w, r)

		clientID, err := s.authHandler(r)
		if err != nil {
			data.fail(err)
			return
		}
		data.clientID = clientID

		req := PT(new(T))
		if err := decodeBody(r.Body, isMsgpack(r.Header.Get("Content-Type")), req); err != nil {
			data.fail(fmt.Errorf("%w: failed to decode request: %w", errBadRequest, err))
			return
		}

		samples, err := s.newSamples(req.samplesRequest())
		if err != nil {
			data.fail(err)
			return
		}

		start := time.Now()
		res, err := compute(samples, req)
		s.metrics.ObserveComputeDuration(name, time.Since(start))
		s.metrics.ObserveSampleSize(name, samples.Len())
		if err != nil {
			if errors.Is(err, stat.ErrAlgorithmicGap) {
				s.metrics.IncAlgorithmicGaps()
			}
			data.fail(err)
			return
		}

		data.code = http.StatusOK
		data.res = res
	}
}

func (s *Service) newSamples(req *SamplesRequest) (*stat.Samples, error) {
	if len(req.Data) > s.cfg.Stats.MaxSamples {
		return nil, fmt.Errorf("%w: got %d, max is %d", errTooManySamples, len(req.Data), s.cfg.Stats.MaxSamples)
	}

	if err := stat.CheckFinite(req.Data); err != nil {
		return nil, err
	}

	exclude := req.Exclude
	if exclude == nil {
		exclude = s.cfg.Stats.DefaultExclude
	}

	def := 0.0
	if req.Default != nil {
		def = float64(*req.Default)
	}
	if req.Strict {
		def = math.NaN()
	}

	opts := []stat.Option{
		stat.WithDefault(def),
		stat.WithPearsonPrecision(s.cfg.Stats.PearsonPrecision),
	}

	data := req.Data
	if len(exclude) > 0 {
		data = stat.Without(data, exclude...)
	}

	return stat.New(data, opts...), nil
}

func describeFormat(format string) string {
	if format == "" {
		return stat.FormatDict
	}
	return format
}

func (s *Service) describe(samples *stat.Samples, req *DescribeRequest) (any, error) {
	report, err := samples.DescribeAs(req.Quantiles, describeFormat(req.Format))
	if err != nil {
		return nil, err
	}
	return DescribeResponse{Report: reportPayload(report)}, nil
}

func (s *Service) histogram(samples *stat.Samples, req *HistogramRequest) (any, error) {
	if req.Bins > s.cfg.Stats.MaxBins || len(req.Bounds) > s.cfg.Stats.MaxBins {
		return nil, fmt.Errorf("%w: at most %d bins can be requested", stat.ErrInvalidArgument, s.cfg.Stats.MaxBins)
	}

	var opts []stat.HistogramOption
	if req.Bins != 0 {
		opts = append(opts, stat.WithBinCount(req.Bins))
	}
	if len(req.Bounds) > 0 {
		opts = append(opts, stat.WithBinBounds(req.Bounds))
	}
	if req.BinDigits != nil {
		opts = append(opts, stat.WithBinDigits(*req.BinDigits))
	}

	h, err := samples.Histogram(opts...)
	if err != nil {
		return nil, err
	}

	res := HistogramResponse{
		Bins:  h,
		Total: h.Total(),
	}
	if req.Raw {
		res.Raw = h.Raw()
	}
	return res, nil
}

func (s *Service) quantile(samples *stat.Samples, req *QuantileRequest) (any, error) {
	if len(req.Q) == 0 {
		return nil, fmt.Errorf("%w: no quantile requested", stat.ErrInvalidArgument)
	}

	res := QuantileResponse{
		Quantiles: make([]QuantileValue, len(req.Q)),
	}
	for i, q := range req.Q {
		v, err := samples.Quantile(q)
		if err != nil {
			return nil, err
		}
		res.Quantiles[i] = QuantileValue{Q: q, Value: Float(v)}
	}
	return res, nil
}

func (s *Service) zscore(samples *stat.Samples, req *ZScoreRequest) (any, error) {
	res := ZScoreResponse{
		ZScores: make([]Float, len(req.Values)),
	}
	for i, v := range req.Values {
		res.ZScores[i] = Float(samples.ZScore(v))
	}
	return res, nil
}

func (s *Service) trim(samples *stat.Samples, req *TrimRequest) (any, error) {
	format := describeFormat(req.Format)
	if err := stat.CheckFormat(format); err != nil {
		return nil, err
	}

	n := samples.Len()
	if err := samples.TrimRelative(req.Amount); err != nil {
		return nil, err
	}

	report, err := samples.DescribeAs(req.Quantiles, format)
	if err != nil {
		return nil, err
	}

	return TrimResponse{
		Removed: n - samples.Len(),
		Report:  reportPayload(report),
	}, nil
}

func (s *Service) capability(samples *stat.Samples, req *CapabilityRequest) (any, error) {
	c, err := samples.Capability(req.LSL, req.USL)
	if err != nil {
		return nil, err
	}
	return CapabilityResponse{
		LSL:    c.LSL,
		USL:    c.USL,
		Cp:     Float(c.Cp),
		Cpk:    Float(c.Cpk),
		Mean:   Float(samples.Mean()),
		StdDev: Float(samples.StdDev()),
	}, nil
}

func (s *Service) shape(samples *stat.Samples, _ *ShapeRequest) (any, error) {
	typ, err := samples.PearsonType()
	if err != nil {
		return nil, err
	}
	return ShapeResponse{
		Skewness:    Float(samples.Skewness()),
		Kurtosis:    Float(samples.Kurtosis()),
		PearsonType: int(typ),
		PearsonName: typ.String(),
	}, nil
}

func (s *Service) summary(samples *stat.Samples, _ *SummaryRequest) (any, error) {
	return SummaryResponse{
		Count:     samples.Count(),
		Mean:      Float(samples.Mean()),
		Median:    Float(samples.Median()),
		Min:       Float(samples.Min()),
		Max:       Float(samples.Max()),
		IQR:       Float(samples.IQR()),
		Trimean:   Float(samples.Trimean()),
		Variance:  Float(samples.Variance()),
		StdDev:    Float(samples.StdDev()),
		MAD:       Float(samples.MAD()),
		RelStdDev: Float(samples.RelStdDev()),
		Mode:      floats(samples.Mode()),
		AllModes:  floats(samples.AllModes()),
	}, nil
}

// reportPayload makes a rendered report encodable: floats become Float and
// list reports become [key, value] pairs.
func reportPayload(rendered any) any {
	switch v := rendered.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = reportValue(val)
		}
		return out
	case stat.Report:
		pairs := make([][2]any, len(v))
		for i, item := range v {
			pairs[i] = [2]any{item.Key, reportValue(item.Value)}
		}
		return pairs
	default:
		return rendered
	}
}

func reportValue(v any) any {
	switch val := v.(type) {
	case float64:
		return Float(val)
	case []float64:
		return floats(val)
	default:
		return v
	}
}
