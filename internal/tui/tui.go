// Package tui implements the terminal dashboard.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kurtsley/nanoterm/internal/feed"
)

// RenderError means the terminal could not be driven.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("terminal: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// program is the subset of *tea.Program that Run needs.
type program interface {
	Run() (tea.Model, error)
}

// newProgram is swapped in tests.
var newProgram = func(ctx context.Context, m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
}

// Run shows the dashboard until the user quits, ctx is cancelled or the quote
// feed fails for good. The terminal is restored on every exit path.
func Run(ctx context.Context, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, cfg)
	log := m.cfg.Logger
	log.Info("dashboard starting",
		zap.String("mode", m.cfg.Mode.String()),
		zap.Duration("tick", m.cfg.Tick),
	)

	if m.cfg.Mode == ModeMailbox {
		p := feed.NewPoller(m.cfg.Source, m.cfg.Tracker, m.cfg.Mailbox, log)
		go func() {
			// A fatal error also reaches the model through the mailbox.
			if err := p.Run(ctx); err != nil {
				log.Debug("poller exited", zap.Error(err))
			}
		}()
	}

	final, err := newProgram(ctx, m).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info("dashboard cancelled")
			return nil
		}
		if errors.Is(err, tea.ErrInterrupted) {
			log.Info("dashboard interrupted")
			return nil
		}
		return &RenderError{Err: err}
	}

	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	log.Info("dashboard stopped")
	return nil
}
