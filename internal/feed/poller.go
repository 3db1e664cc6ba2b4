package feed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kurtsley/nanoterm/internal/quote"
)

// Poller fetches quotes in the background and posts them to a Mailbox, so
// network latency never holds up a redraw.
type Poller struct {
	Source  quote.Source
	Tracker *Tracker
	Mailbox *Mailbox
	Logger  *zap.Logger

	// after is swapped in tests.
	after func(time.Duration) <-chan time.Time
}

// NewPoller creates a Poller.
func NewPoller(src quote.Source, t *Tracker, mb *Mailbox, log *zap.Logger) *Poller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{Source: src, Tracker: t, Mailbox: mb, Logger: log, after: time.After}
}

// Run fetches until ctx ends or the tracker reports a fatal failure. The
// fatal update is posted before Run returns its error.
func (p *Poller) Run(ctx context.Context) error {
	p.Logger.Debug("poller started")
	defer p.Logger.Debug("poller stopped")

	for {
		q, err := p.Source.Fetch(ctx)
		if ctx.Err() != nil {
			return nil
		}
		u := p.Tracker.Observe(q, err)
		p.Mailbox.Put(u)
		if u.Fatal {
			return u.Err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-p.after(u.Delay):
		}
	}
}
