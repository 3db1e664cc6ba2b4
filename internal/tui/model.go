package tui

import (
	"context"
	"image"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kurtsley/nanoterm/internal/feed"
	"github.com/kurtsley/nanoterm/internal/frame"
	"github.com/kurtsley/nanoterm/internal/layout"
	"github.com/kurtsley/nanoterm/internal/metrics"
	"github.com/kurtsley/nanoterm/internal/quote"
)

func init() {
	// Force TrueColor for terminals that misreport capabilities (e.g., TERM=screen in tmux)
	os.Setenv("COLORTERM", "truecolor")
}

const (
	DefaultTick = 5 * time.Second

	FetchingNotice = "Fetching quote..."
	RetryingNotice = "Quote unavailable, retrying..."
)

// State is the lifecycle state of the dashboard.
type State int

const (
	StateRunning State = iota
	StateStopped
)

// Mode selects how fetching is interleaved with drawing.
type Mode int

const (
	// ModeMailbox fetches on a background goroutine and redraws on its own
	// tick, so a slow fetch never delays input handling or drawing.
	ModeMailbox Mode = iota

	// ModeSerial waits for each fetch before arming the next tick.
	ModeSerial
)

func (m Mode) String() string {
	if m == ModeSerial {
		return "serial"
	}
	return "mailbox"
}

// Config holds dashboard configuration.
type Config struct {
	Source   quote.Source
	Tick     time.Duration
	Mode     Mode
	Composer frame.Composer
	Logo     image.Image

	// Tracker and Mailbox are created from Tick when nil.
	Tracker *feed.Tracker
	Mailbox *feed.Mailbox

	Logger *zap.Logger
	Now    func() time.Time
}

type (
	// tickMsg starts the next fetch in serial mode.
	tickMsg time.Time

	// redrawMsg repaints the frame in mailbox mode.
	redrawMsg time.Time

	// fetchedMsg carries a serial fetch result.
	fetchedMsg struct {
		q   quote.Quote
		err error
	}

	// updateMsg carries a mailbox delivery.
	updateMsg feed.Update
)

// Model is the Bubble Tea model driving the dashboard.
type Model struct {
	ctx   context.Context
	cfg   Config
	keys  KeyMap
	logos *logoCache

	state    State
	err      error
	quote    *quote.Quote
	failures int

	// Serial mode timing.
	lastTick time.Time
	wait     time.Duration
	fetching bool

	width  int
	height int
}

// New creates the dashboard model.
func New(ctx context.Context, cfg Config) Model {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Composer == (frame.Composer{}) {
		cfg.Composer = frame.NewComposer(frame.DefaultFormat)
	}
	if cfg.Tracker == nil {
		cfg.Tracker = feed.NewTracker(feed.TrackerConfig{Interval: cfg.Tick, Logger: cfg.Logger})
	}
	if cfg.Mailbox == nil {
		cfg.Mailbox = feed.NewMailbox()
	}

	m := Model{
		ctx:   ctx,
		cfg:   cfg,
		keys:  DefaultKeyMap(),
		logos: newLogoCache(cfg.Logo),
		state: StateRunning,
	}
	if cfg.Mode == ModeSerial {
		m.lastTick = cfg.Now()
		m.fetching = true
	}
	return m
}

// State returns the lifecycle state.
func (m Model) State() State {
	return m.state
}

// Err returns the error that stopped the dashboard, if any.
func (m Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.cfg.Mode == ModeSerial {
		return m.fetch()
	}
	return tea.Batch(m.waitForUpdate(), m.redraw())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateStopped {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.cfg.Logger.Debug("quit requested", zap.String("key", msg.String()))
			m.state = StateStopped
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case fetchedMsg:
		m.fetching = false
		u := m.cfg.Tracker.Observe(msg.q, msg.err)
		m.apply(u)
		if u.Fatal {
			return m.stop(u.Err)
		}

		interval := m.cfg.Tick
		if u.Err != nil {
			interval = u.Delay
		}
		m.wait = max(0, interval-m.cfg.Now().Sub(m.lastTick))
		return m, tea.Tick(m.wait, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tickMsg:
		if m.fetching {
			return m, nil
		}
		m.lastTick = m.cfg.Now()
		m.fetching = true
		return m, m.fetch()

	case updateMsg:
		u := feed.Update(msg)
		m.apply(u)
		if u.Fatal {
			return m.stop(u.Err)
		}
		return m, m.waitForUpdate()

	case redrawMsg:
		return m, m.redraw()
	}

	return m, nil
}

func (m *Model) apply(u feed.Update) {
	if u.Quote != nil {
		q := *u.Quote
		m.quote = &q
	}
	m.failures = u.Failures
}

func (m Model) stop(err error) (tea.Model, tea.Cmd) {
	m.cfg.Logger.Error("giving up on quote feed", zap.Error(err))
	m.state = StateStopped
	m.err = err
	return m, tea.Quit
}

// fetch runs one blocking fetch on Bubble Tea's command goroutine.
func (m Model) fetch() tea.Cmd {
	ctx, src := m.ctx, m.cfg.Source
	return func() tea.Msg {
		q, err := src.Fetch(ctx)
		return fetchedMsg{q: q, err: err}
	}
}

func (m Model) waitForUpdate() tea.Cmd {
	ctx, mb := m.ctx, m.cfg.Mailbox
	return func() tea.Msg {
		select {
		case u := <-mb.C():
			return updateMsg(u)
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) redraw() tea.Cmd {
	return tea.Tick(m.cfg.Tick, func(t time.Time) tea.Msg {
		return redrawMsg(t)
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if m.state == StateStopped {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading...\n"
	}

	metrics.FramesTotal.Inc()
	return paint(m.compose(), m.width, m.height, m.logos)
}

// compose builds the draw commands for the current state.
func (m Model) compose() *frame.Node {
	g := frame.Geometry{Width: m.width, Height: m.height}
	p := layout.Select(uint(m.height))

	switch {
	case m.quote != nil:
		return m.cfg.Composer.Compose(*m.quote, p, g)
	case p.TooSmall:
		return m.cfg.Composer.Compose(quote.Quote{}, p, g)
	case m.failures > 0:
		return m.cfg.Composer.Notice(g, RetryingNotice)
	default:
		return m.cfg.Composer.Notice(g, FetchingNotice)
	}
}
