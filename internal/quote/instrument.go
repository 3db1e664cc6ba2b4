package quote

import (
	"context"
	"errors"
	"time"

	"github.com/kurtsley/nanoterm/internal/metrics"
)

// Instrument wraps src so every Fetch is counted and timed.
func Instrument(src Source) Source {
	return SourceFunc(func(ctx context.Context) (Quote, error) {
		start := time.Now()
		q, err := src.Fetch(ctx)
		metrics.FetchTotal.Inc()
		metrics.FetchLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.FetchErrors.WithLabelValues(ErrorKind(err)).Inc()
		}
		return q, err
	})
}

// ErrorKind classifies err for metrics and logs.
func ErrorKind(err error) string {
	var fe *FetchError
	var de *DecodeError
	switch {
	case errors.As(err, &de):
		return "decode"
	case errors.As(err, &fe) && fe.StatusCode != 0:
		return "status"
	case errors.As(err, &fe):
		return "transport"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
