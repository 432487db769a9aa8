package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/facet"
	"github.com/honeycarbs/talent-search/pkg/logging"
)

// State is the outcome of the most recent search
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateSuccess   State = "success"
	StateFallback  State = "fallback"
)

// View selects the result layout. It never changes the data.
type View string

const (
	ViewGrid  View = "grid"
	ViewTable View = "table"
)

// ParseView returns the view named by s and false for unknown names
func ParseView(s string) (View, bool) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case ViewGrid:
		return ViewGrid, true
	case ViewTable:
		return ViewTable, true
	default:
		return "", false
	}
}

// FallbackNotice is shown when sample candidates replace backend results
const FallbackNotice = "Search service unavailable — showing sample candidates"

// Snapshot is a copy of the controller state, safe to keep and read without locking
type Snapshot struct {
	Query         string
	Loading       bool
	State         State
	Results       []domain.Candidate
	Visible       []domain.Candidate
	Chips         []string
	ActiveFilters []string
	Analysis      string
	Notice        string
	Fallback      bool
	View          View
}

// Outcome describes what one SubmitQuery call did
type Outcome struct {
	Seq     uint64
	Skipped bool
	State   State
	Count   int
}

// Option configures Controller
type Option func(*config)

type config struct {
	provider Provider
	fallback FallbackSource
	logger   *logging.Logger
	onLoad   func(loading bool)
}

// WithProvider sets the search provider
func WithProvider(p Provider) Option {
	return func(c *config) {
		c.provider = p
	}
}

// WithFallback sets the records used when the provider fails
func WithFallback(src FallbackSource) Option {
	return func(c *config) {
		c.fallback = src
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithLoadingHook registers fn to be called with true when a search starts and false when it
// ends, once each per search.
func WithLoadingHook(fn func(loading bool)) Option {
	return func(c *config) {
		c.onLoad = fn
	}
}

// Controller owns one session's query, results and active filters. Searches are neither
// serialized nor cancelled: the response that resolves last replaces the results.
type Controller struct {
	provider Provider
	fallback FallbackSource
	logger   *logging.Logger
	onLoad   func(bool)

	mu       sync.Mutex
	seq      uint64
	applied  uint64
	inFlight int
	query    string
	state    State
	results  []domain.Candidate
	active   []string
	analysis string
	notice   string
	usedFake bool
	view     View
}

// NewController builds Controller from options
func NewController(opts ...Option) (*Controller, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.provider == nil {
		return nil, fmt.Errorf("search.Controller: provider is required")
	}
	if cfg.fallback == nil {
		return nil, fmt.Errorf("search.Controller: fallback source is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return &Controller{
		provider: cfg.provider,
		fallback: cfg.fallback,
		logger:   cfg.logger.With("provider", cfg.provider.Name()),
		onLoad:   cfg.onLoad,
		state:    StateIdle,
		view:     ViewGrid,
	}, nil
}

// SubmitQuery runs one search for text. Blank text is ignored. Provider failures never reach
// the caller: the sample candidates are shown instead with a notice.
func (c *Controller) SubmitQuery(ctx context.Context, text string) Outcome {
	if strings.TrimSpace(text) == "" {
		return Outcome{Skipped: true, State: c.State()}
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.inFlight++
	c.query = text
	c.mu.Unlock()

	c.loading(true)
	defer c.loading(false)

	res, err := c.provider.Search(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	if c.applied > seq {
		c.logger.Debug("older search resolved after a newer one", "seq", seq, "applied", c.applied)
	}
	c.applied = seq

	if err != nil {
		c.results = c.fallback()
		c.analysis = ""
		c.notice = FallbackNotice
		c.usedFake = true
		c.state = StateFallback
		c.logger.Warn("search failed, showing sample candidates", "seq", seq, "err", err, "count", len(c.results))
		return Outcome{Seq: seq, State: StateFallback, Count: len(c.results)}
	}

	c.results = domain.CloneAll(res.Matches)
	if c.results == nil {
		c.results = []domain.Candidate{}
	}
	c.analysis = res.Analysis
	c.notice = ""
	c.usedFake = false
	c.state = StateSuccess
	c.logger.Info("search finished", "seq", seq, "count", len(c.results))

	return Outcome{Seq: seq, State: StateSuccess, Count: len(c.results)}
}

// ToggleFilter adds tag to the active filters or removes it. Results are untouched.
func (c *Controller) ToggleFilter(tag string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = facet.Toggle(c.active, tag)
	return append([]string(nil), c.active...)
}

// ClearFilters drops every active filter
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = nil
}

// SetView switches the layout. Unknown views are ignored.
func (c *Controller) SetView(v View) {
	if _, ok := ParseView(string(v)); !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = v
}

// Loading reports whether any search is in flight
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.inFlight > 0
}

// State returns the outcome of the last resolved search, or searching while one is in flight
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stateLocked()
}

// Snapshot returns a copy of the current state with the visible records and filter chips
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := domain.CloneAll(c.results)
	return Snapshot{
		Query:         c.query,
		Loading:       c.inFlight > 0,
		State:         c.stateLocked(),
		Results:       results,
		Visible:       facet.Apply(results, c.active),
		Chips:         facet.Chips(results),
		ActiveFilters: append([]string(nil), c.active...),
		Analysis:      c.analysis,
		Notice:        c.notice,
		Fallback:      c.usedFake,
		View:          c.view,
	}
}

func (c *Controller) stateLocked() State {
	if c.inFlight > 0 {
		return StateSearching
	}
	return c.state
}

func (c *Controller) loading(on bool) {
	if c.onLoad != nil {
		c.onLoad(on)
	}
}
