package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	FetchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nanoterm_fetch_total",
			Help: "Quote fetches attempted",
		})
	FetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanoterm_fetch_errors_total",
			Help: "Quote fetches that failed",
		},
		[]string{"kind"},
	)
	FetchLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nanoterm_fetch_latency_seconds",
			Help:    "Time to fetch and decode one quote",
			Buckets: prometheus.DefBuckets,
		})
	FramesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nanoterm_frames_total",
			Help: "Frames composed and painted",
		})
	ConsecutiveFailures = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nanoterm_consecutive_failures",
			Help: "Fetch failures since the last good quote",
		})
)

func init() {
	prometheus.MustRegister(
		FetchTotal, FetchErrors, FetchLatency,
		FramesTotal, ConsecutiveFailures,
	)
}

// Handler serves the registered metrics.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, log *zap.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return serve(ctx, ln, log)
}

func serve(ctx context.Context, ln net.Listener, log *zap.Logger) error {
	srv := &http.Server{
		Handler:           Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
