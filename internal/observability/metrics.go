package observability

import (
	"io"
	"net/http"
	"strconv"
	"time"
)

type Metrics struct {
	apiRequests     *CounterVec
	apiLatency      *HistogramVec
	apiInflight     *Gauge
	mutations       *CounterVec
	persistFailures *CounterVec
	sessionsSaved   *CounterVec
}

// NewMetrics returns nil when disabled; every method is nil-safe.
func NewMetrics(enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	return &Metrics{
		apiRequests: NewCounterVec("sh_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"sh_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		),
		apiInflight:     NewGauge("sh_api_inflight_requests", "In-flight API requests."),
		mutations:       NewCounterVec("sh_study_mutations_total", "Study state mutations by operation and result.", []string{"op", "result"}),
		persistFailures: NewCounterVec("sh_study_persist_failures_total", "Mutations applied in memory but not saved.", []string{"op"}),
		sessionsSaved:   NewCounterVec("sh_study_sessions_total", "Sessions recorded by source.", []string{"source"}),
	}
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) APIInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

// ObserveMutation counts one store mutation. result is ok, invalid,
// not_found or persist_failed.
func (m *Metrics) ObserveMutation(op, result string) {
	if m == nil {
		return
	}
	m.mutations.Inc(op, result)
	if result == "persist_failed" {
		m.persistFailures.Inc(op)
	}
}

func (m *Metrics) IncSession(source string) {
	if m != nil {
		m.sessionsSaved.Inc(source)
	}
}

func (m *Metrics) MutationCount(op, result string) float64 {
	if m == nil {
		return 0
	}
	return m.mutations.Value(op, result)
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight, m.mutations, m.persistFailures, m.sessionsSaved,
	}
	for _, c := range writers {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}
