package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PowerAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paradecast_power_api_calls_total",
			Help: "Total NASA POWER API calls",
		},
		[]string{"status"},
	)

	PowerAPILatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "paradecast_power_api_latency_seconds",
			Help:    "NASA POWER API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	FallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paradecast_fallback_dataset_total",
			Help: "Times the embedded fallback dataset substituted for live data",
		},
	)

	AssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paradecast_assessments_total",
			Help: "Completed risk assessments by tier",
		},
		[]string{"tier"},
	)

	AdvisorCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paradecast_advisor_calls_total",
			Help: "AI Plan B generation attempts by outcome",
		},
		[]string{"outcome"},
	)
)
