// Package metrics exposes backend and workflow counters in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"headshot-viewer/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "headshot_viewer"

type Metrics struct {
	registry *prometheus.Registry

	backendCalls    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	operations      *prometheus.CounterVec
	collectionSize  prometheus.Gauge
	selectionSize   prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		backendCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_calls_total",
				Help:      "Backend facade calls by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		backendDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_call_duration_seconds",
				Help:      "Backend facade call latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workflow_operations_total",
				Help:      "Workflow operations by name and outcome",
			},
			[]string{"op", "outcome"},
		),
		collectionSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "collection_size",
			Help:      "Images in the loaded collection",
		}),
		selectionSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selection_size",
			Help:      "Currently selected images",
		}),
	}

	m.registry.MustRegister(
		m.backendCalls,
		m.backendDuration,
		m.operations,
		m.collectionSize,
		m.selectionSize,
	)
	return m
}

// ObserveBackend records one facade call.
func (m *Metrics) ObserveBackend(op string, elapsed time.Duration, err error) {
	m.backendCalls.WithLabelValues(op, Outcome(err)).Inc()
	m.backendDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveOperation records one workflow operation.
func (m *Metrics) ObserveOperation(op string, err error) {
	m.operations.WithLabelValues(op, Outcome(err)).Inc()
}

func (m *Metrics) SetCollectionSize(n int) { m.collectionSize.Set(float64(n)) }
func (m *Metrics) SetSelectionSize(n int)  { m.selectionSize.Set(float64(n)) }

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Summary renders the call and operation counters as text, one
// "op outcome count" line per series, sorted.
func (m *Metrics) Summary() string {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Sprintf("metrics unavailable: %v", err)
	}

	var lines []string
	for _, mf := range families {
		name := strings.TrimPrefix(mf.GetName(), namespace+"_")
		for _, metric := range mf.GetMetric() {
			if metric.GetCounter() == nil {
				continue
			}
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, l := range metric.GetLabel() {
				labels = append(labels, l.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s %s %.0f", name, strings.Join(labels, " "), metric.GetCounter().GetValue()))
		}
	}
	if len(lines) == 0 {
		return "no calls recorded"
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// Outcome maps an error to the outcome label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}

// Server serves /metrics until Shutdown is called.
type Server struct {
	srv    *http.Server
	logger logger.Logger
}

func NewServer(addr string, m *Metrics, log logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &Server{
		srv:    &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		logger: log,
	}
}

// Start listens in the background. Listen errors are logged.
func (s *Server) Start() {
	go func() {
		s.logger.Info("Metrics", "metrics endpoint listening", map[string]interface{}{"addr": s.srv.Addr})
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Metrics", err, map[string]interface{}{"addr": s.srv.Addr})
		}
	}()
}

func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Metrics", err, nil)
	}
}
