package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"d3console/internal/console/streaming"
	"d3console/internal/log"
)

// Metrics holds the Prometheus collectors for one console. They live in
// their own registry so several consoles, or tests, do not collide.
type Metrics struct {
	registry  *prometheus.Registry
	startTime time.Time

	bytesRecvTotal   prometheus.Counter
	bytesSentTotal   prometheus.Counter
	linesTotal       prometheus.Counter
	eventsTotal      *prometheus.CounterVec
	unknownTotal     prometheus.Counter
	connectionsTotal prometheus.Counter
	connected        prometheus.Gauge
	uptimeSeconds    prometheus.Gauge
}

// New creates and registers the console metrics.
func New() *Metrics {
	m := &Metrics{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
		bytesRecvTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "d3console_bytes_received_total",
			Help: "Total bytes received from the server.",
		}),
		bytesSentTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "d3console_bytes_sent_total",
			Help: "Total bytes sent to the server.",
		}),
		linesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "d3console_lines_total",
			Help: "Total lines reassembled from the server stream.",
		}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "d3console_events_total",
			Help: "Events fired, by kind.",
		}, []string{"kind"}),
		unknownTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "d3console_unknown_lines_total",
			Help: "Lines no rule recognized.",
		}),
		connectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "d3console_connections_total",
			Help: "Connections established since start.",
		}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "d3console_connected",
			Help: "1 while connected to the server.",
		}),
		uptimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "d3console_uptime_seconds",
			Help: "Process uptime in seconds.",
		}),
	}

	m.registry.MustRegister(
		m.bytesRecvTotal,
		m.bytesSentTotal,
		m.linesTotal,
		m.eventsTotal,
		m.unknownTotal,
		m.connectionsTotal,
		m.connected,
		m.uptimeSeconds,
	)

	return m
}

// BytesReceived counts inbound traffic.
func (m *Metrics) BytesReceived(n int) {
	m.bytesRecvTotal.Add(float64(n))
}

// BytesSent counts outbound traffic.
func (m *Metrics) BytesSent(n int) {
	m.bytesSentTotal.Add(float64(n))
}

// Observe counts one event. Subscribe it to every kind.
func (m *Metrics) Observe(ev streaming.Event) {
	switch ev.Kind {
	case streaming.EventRaw:
		m.linesTotal.Inc()
		return
	case streaming.EventUnknown:
		m.unknownTotal.Inc()
	case streaming.EventConnected:
		m.connectionsTotal.Inc()
		m.connected.Set(1)
	case streaming.EventClose:
		m.connected.Set(0)
	}
	m.eventsTotal.WithLabelValues(string(ev.Kind)).Inc()
}

// Handler returns an http.Handler that refreshes the uptime before serving.
func (m *Metrics) Handler() http.Handler {
	inner := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.uptimeSeconds.Set(time.Since(m.startTime).Seconds())
		inner.ServeHTTP(w, r)
	})
}

// Serve exposes /metrics on listen until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, listen string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Serving metrics", "listen", listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
