package transport

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the request collectors of Instrumented.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg when non-nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pusher",
			Subsystem: "rest",
			Name:      "requests_total",
			Help:      "Total REST calls by HTTP method and outcome status.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pusher",
			Subsystem: "rest",
			Name:      "request_duration_seconds",
			Help:      "Latency of REST calls by HTTP method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.requests, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

var (
	defaultMetricsOnce sync.Once
	defaultMetrics     *Metrics
)

// DefaultMetrics returns collectors registered once with the default
// registry. Collectors already registered there under the same names are reused.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		m, _ := NewMetrics(nil)
		m.requests = registerOrReuse(prometheus.DefaultRegisterer, m.requests)
		m.duration = registerOrReuse(prometheus.DefaultRegisterer, m.duration)
		defaultMetrics = m
	})
	return defaultMetrics
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	// Incompatible collector under the same name: record into an unregistered one.
	return c
}

// Instrumented records the count and latency of every call in m.
func Instrumented(m *Metrics) Middleware {
	return func(next Transport) Transport {
		if m == nil {
			return next
		}
		return Func(func(ctx context.Context, req *Request) (*Response, error) {
			start := time.Now()
			resp, err := next.Do(ctx, req)

			method := http.MethodGet
			if req != nil && req.Method != "" {
				method = req.Method
			}
			status := Outcome(resp, err).Status

			m.requests.WithLabelValues(method, status.String()).Inc()
			m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
			return resp, err
		})
	}
}
