package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Requests        *prometheus.CounterVec
	APIErrors       prometheus.Counter
	RequestSeconds  *prometheus.HistogramVec
	LookupSeconds   prometheus.Histogram
	LightScore      prometheus.Histogram
	DatasetSize     prometheus.Gauge
	InFlightRequest prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "light_score_requests_total",
			Help: "Total number of light score requests by outcome.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		LookupSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "building_lookup_duration_seconds",
			Help:    "Duration of nearby building lookups.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		LightScore: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "light_score_value",
			Help:    "Distribution of computed light scores.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		DatasetSize: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "building_dataset_size",
			Help: "Number of buildings loaded into the in-memory dataset.",
		}),
		InFlightRequest: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "light_score_requests_in_flight",
			Help: "Current number of light score requests being computed.",
		}),
	}
}
