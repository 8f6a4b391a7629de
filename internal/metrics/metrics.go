// Package metrics counts hashing activity and writes it as a Prometheus
// textfile for node_exporter's textfile collector. A nil *Manager is valid
// and records nothing.
package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jxwalker/hashcheck/internal/config"
	"github.com/jxwalker/hashcheck/internal/hasher"
)

const namespace = "hashcheck"

// Hash kinds used for the hashes_total label.
const (
	KindText = "text"
	KindFile = "file"
)

type Manager struct {
	path     string
	registry *prometheus.Registry

	hashesTotal      *prometheus.CounterVec
	bytesHashed      prometheus.Counter
	comparisonsTotal *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	lastRun          prometheus.Gauge
}

// New returns nil unless the textfile exporter is enabled in cfg.
func New(cfg *config.Config) *Manager {
	if cfg == nil || !cfg.Metrics.PrometheusTextfile.Enabled || cfg.Metrics.PrometheusTextfile.Path == "" {
		return nil
	}
	p := cfg.Metrics.PrometheusTextfile.Path
	_ = os.MkdirAll(filepath.Dir(p), 0o755)
	return newManager(p)
}

func newManager(path string) *Manager {
	m := &Manager{
		path:     path,
		registry: prometheus.NewRegistry(),
		hashesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hashes_total",
			Help:      "Digests computed, by input kind.",
		}, []string{"kind"}),
		bytesHashed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_hashed_total",
			Help:      "Total bytes fed to SHA-256.",
		}),
		comparisonsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Completed comparisons, by outcome.",
		}, []string{"outcome"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed operations, by operation.",
		}, []string{"op"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "metrics_timestamp_seconds",
			Help:      "UNIX timestamp when this file was written.",
		}),
	}
	m.registry.MustRegister(m.hashesTotal, m.bytesHashed, m.comparisonsTotal, m.errorsTotal, m.lastRun)
	return m
}

func (m *Manager) ObserveHash(kind string, n int64) {
	if m == nil {
		return
	}
	m.hashesTotal.WithLabelValues(kind).Inc()
	if n > 0 {
		m.bytesHashed.Add(float64(n))
	}
}

func (m *Manager) ObserveComparison(o hasher.Outcome) {
	if m == nil {
		return
	}
	m.comparisonsTotal.WithLabelValues(o.String()).Inc()
}

func (m *Manager) IncErrors(op string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(op).Inc()
}

// Write replaces the textfile atomically.
func (m *Manager) Write() error {
	if m == nil {
		return nil
	}
	m.lastRun.SetToCurrentTime()
	return prometheus.WriteToTextfile(m.path, m.registry)
}
