package server

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lacquerai/heartbeat/internal/heartbeat"
)

// Metrics holds the heartbeat's Prometheus collectors.
type Metrics struct {
	beatsTotal  prometheus.Counter
	lastSample  prometheus.Gauge
	samples     prometheus.Histogram
	dateMatches *prometheus.CounterVec
	recordBytes prometheus.Gauge
}

// NewMetricsWithRegistry creates metrics registered with registerer. A nil
// registerer leaves them unregistered.
func NewMetricsWithRegistry(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		beatsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heartbeat_beats_total",
			Help: "Total number of beats completed",
		}),
		lastSample: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "heartbeat_last_sample",
			Help: "Random number drawn by the most recent beat",
		}),
		samples: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "heartbeat_sample_value",
			Help:    "Distribution of random numbers drawn",
			Buckets: prometheus.LinearBuckets(31, 32, 8),
		}),
		dateMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heartbeat_date_match_total",
			Help: "Date pattern checks by result",
		}, []string{"result"}),
		recordBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "heartbeat_record_bytes",
			Help: "Size of the serialized record in bytes",
		}),
	}

	if registerer != nil {
		registerer.MustRegister(m.beatsTotal)
		registerer.MustRegister(m.lastSample)
		registerer.MustRegister(m.samples)
		registerer.MustRegister(m.dateMatches)
		registerer.MustRegister(m.recordBytes)
	}

	return m
}

// Observe records one beat. It is a heartbeat.Observer.
func (m *Metrics) Observe(b heartbeat.Beat) {
	m.beatsTotal.Inc()
	m.lastSample.Set(float64(b.Sample))
	m.samples.Observe(float64(b.Sample))
	m.dateMatches.WithLabelValues(strconv.FormatBool(b.DateMatch)).Inc()
	m.recordBytes.Set(float64(len(b.Record)))
}
