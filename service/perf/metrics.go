// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package perf

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsSubSystemAPI  = "api"
	metricsSubSystemStat = "stat"
)

type Metrics struct {
	registry *prometheus.Registry

	APIRequestCounters    *prometheus.CounterVec
	APIRateLimitedCounter prometheus.Counter

	StatSampleSizes      *prometheus.HistogramVec
	StatComputeDurations *prometheus.HistogramVec
	StatAlgorithmicGaps  prometheus.Counter
}

func NewMetrics(namespace string, registry *prometheus.Registry) *Metrics {
	var m Metrics

	if registry != nil {
		m.registry = registry
	} else {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: namespace,
		}))
		m.registry.MustRegister(collectors.NewGoCollector())
	}

	m.APIRequestCounters = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemAPI,
			Name:      "requests_total",
			Help:      "Total number of handled API requests",
		},
		[]string{"handler", "code"},
	)
	m.registry.MustRegister(m.APIRequestCounters)

	m.APIRateLimitedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemAPI,
			Name:      "rate_limited_total",
			Help:      "Total number of API requests rejected by the rate limiter",
		},
	)
	m.registry.MustRegister(m.APIRateLimitedCounter)

	m.StatSampleSizes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemStat,
			Name:      "sample_size",
			Help:      "Number of samples per computed set",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"handler"},
	)
	m.registry.MustRegister(m.StatSampleSizes)

	m.StatComputeDurations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemStat,
			Name:      "compute_duration_seconds",
			Help:      "Time spent computing statistics",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"handler"},
	)
	m.registry.MustRegister(m.StatComputeDurations)

	m.StatAlgorithmicGaps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemStat,
			Name:      "algorithmic_gaps_total",
			Help:      "Total number of sets no Pearson class could be assigned to",
		},
	)
	m.registry.MustRegister(m.StatAlgorithmicGaps)

	return &m
}

func (m *Metrics) IncAPIRequests(handler string, code int) {
	m.APIRequestCounters.With(prometheus.Labels{"handler": handler, "code": strconv.Itoa(code)}).Inc()
}

func (m *Metrics) IncAPIRateLimited() {
	m.APIRateLimitedCounter.Inc()
}

func (m *Metrics) ObserveSampleSize(handler string, size int) {
	m.StatSampleSizes.With(prometheus.Labels{"handler": handler}).Observe(float64(size))
}

func (m *Metrics) ObserveComputeDuration(handler string, d time.Duration) {
	m.StatComputeDurations.With(prometheus.Labels{"handler": handler}).Observe(d.Seconds())
}

func (m *Metrics) IncAlgorithmicGaps() {
	m.StatAlgorithmicGaps.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
