// Package feed keeps the latest quote and decides when to fetch the next one.
package feed

import (
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/kurtsley/nanoterm/internal/metrics"
	"github.com/kurtsley/nanoterm/internal/quote"
)

// Backoff bounds the wait between failed fetches.
type Backoff struct {
	Min time.Duration
	Max time.Duration
}

// Delay returns the wait after the given number of consecutive failures.
// It doubles from Min and never exceeds Max.
func (b Backoff) Delay(failures int) time.Duration {
	if failures <= 0 {
		return 0
	}
	return retryablehttp.DefaultBackoff(b.Min, b.Max, failures-1, nil)
}

// Update is the outcome of one fetch.
type Update struct {
	// Quote is the quote to display, nil until the first success. After a
	// failure it is the last good quote marked stale.
	Quote *quote.Quote

	// Err is the fetch error, nil on success.
	Err error

	// Failures counts consecutive failed fetches.
	Failures int

	// Delay is how long to wait before the next fetch.
	Delay time.Duration

	// Fatal is set once MaxFailures consecutive failures have happened.
	Fatal bool
}

// TrackerConfig configures a Tracker.
type TrackerConfig struct {
	// Interval between fetches while healthy.
	Interval time.Duration

	// Backoff between fetches after failures.
	Backoff Backoff

	// MaxFailures ends the run after this many consecutive failures.
	// Zero retries forever.
	MaxFailures int

	Logger *zap.Logger
}

// Tracker folds fetch results into the quote to display.
type Tracker struct {
	cfg TrackerConfig

	mu       sync.Mutex
	last     *quote.Quote
	failures int
}

// NewTracker creates a Tracker.
func NewTracker(cfg TrackerConfig) *Tracker {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Backoff.Min == 0 {
		cfg.Backoff.Min = time.Second
	}
	if cfg.Backoff.Max == 0 {
		cfg.Backoff.Max = cfg.Interval
	}
	return &Tracker{cfg: cfg}
}

// Observe records one fetch result.
func (t *Tracker) Observe(q quote.Quote, err error) Update {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err == nil {
		if t.failures > 0 {
			t.cfg.Logger.Info("quote feed recovered", zap.Int("failures", t.failures))
		}
		t.failures = 0
		t.last = &q
		metrics.ConsecutiveFailures.Set(0)
		return Update{Quote: t.last, Delay: t.cfg.Interval}
	}

	t.failures++
	metrics.ConsecutiveFailures.Set(float64(t.failures))
	if t.last != nil && !t.last.Stale {
		stale := t.last.MarkStale()
		t.last = &stale
	}

	u := Update{
		Quote:    t.last,
		Err:      err,
		Failures: t.failures,
		Delay:    t.cfg.Backoff.Delay(t.failures),
		Fatal:    t.cfg.MaxFailures > 0 && t.failures >= t.cfg.MaxFailures,
	}
	t.cfg.Logger.Warn("quote fetch failed",
		zap.Error(err),
		zap.String("kind", quote.ErrorKind(err)),
		zap.Int("failures", u.Failures),
		zap.Duration("retry_in", u.Delay),
		zap.Bool("fatal", u.Fatal),
	)
	return u
}
