// Package metrics holds the Prometheus counters this client exposes over
// /metrics, and a small HTTP server to serve them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesTransmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "udscan_frames_transmitted_total",
		Help: "Total CAN frames written to the adapter.",
	})
	FramesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "udscan_frames_received_total",
		Help: "Total CAN frames read from the adapter.",
	})
	ResponseTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "udscan_response_timeouts_total",
		Help: "Total times a response slot wait expired before a response arrived.",
	})
	PendingRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "udscan_pending_retries_total",
		Help: "Total NRC 0x78 (response pending) retries absorbed while waiting for a response.",
	})
	NegativeResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "udscan_negative_responses_total",
		Help: "Total negative response frames received, excluding response-pending.",
	})
	DecodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "udscan_decode_errors_total",
		Help: "Total frames that failed ISO-TP decode.",
	})
)

// Serve starts an HTTP server exposing /metrics on addr. It returns
// immediately; callers should arrange to Shutdown or Close it themselves
// via the returned server's lifecycle methods.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
