package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the resolution counters. The zero value is not usable; call
// New.
type Metrics struct {
	ResolutionsTotal          *prometheus.CounterVec
	ExcludedDevicesTotal      *prometheus.CounterVec
	PolicyViolationsTotal     *prometheus.CounterVec
	ResolutionDurationSeconds *prometheus.HistogramVec
	CacheLookupsTotal         *prometheus.CounterVec
}

// New builds the resolution collectors without registering them.
func New() *Metrics {
	return &Metrics{
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keyshare_resolutions_total",
				Help: "Total number of share-strategy resolutions.",
			},
			[]string{"strategy", "outcome"},
		),
		ExcludedDevicesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keyshare_excluded_devices_total",
				Help: "Devices left out of a resolution, by reason.",
			},
			[]string{"reason"},
		),
		PolicyViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keyshare_policy_violations_total",
				Help: "Resolutions refused because a verified user has an unsigned device.",
			},
			[]string{"strategy"},
		),
		ResolutionDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "keyshare_resolution_duration_seconds",
				Help:    "Duration of resolutions against an already fetched snapshot.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),
		CacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keyshare_cache_lookups_total",
				Help: "Trust cache lookups, by result.",
			},
			[]string{"result"},
		),
	}
}

// MustRegister registers every collector with reg, or with the default
// registry when reg is nil.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.ResolutionsTotal,
		m.ExcludedDevicesTotal,
		m.PolicyViolationsTotal,
		m.ResolutionDurationSeconds,
		m.CacheLookupsTotal,
	)
}

// HTTP holds the request metrics of a server.
type HTTP struct {
	RequestsTotal          *prometheus.CounterVec
	RequestDurationSeconds *prometheus.HistogramVec
}

// NewHTTP builds the request collectors without registering them.
func NewHTTP() *HTTP {
	return &HTTP{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		RequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// MustRegister registers the HTTP collectors with reg, or with the default
// registry when reg is nil.
func (m *HTTP) MustRegister(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDurationSeconds)
}
