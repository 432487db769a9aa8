// Package web renders the recruiter pages: search, candidate detail, upload, dashboard,
// background checks and pricing.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/background"
	"github.com/honeycarbs/talent-search/internal/domain/billing"
	"github.com/honeycarbs/talent-search/internal/domain/search"
	"github.com/honeycarbs/talent-search/internal/domain/upload"
	"github.com/honeycarbs/talent-search/internal/export"
	"github.com/honeycarbs/talent-search/internal/outreach"
	"github.com/honeycarbs/talent-search/internal/repository"
	"github.com/honeycarbs/talent-search/pkg/logging"
)

// ControllerFactory builds the search controller of a new session
type ControllerFactory func() (*search.Controller, error)

// PlanSetter switches the billing plan an upload account is metered against
type PlanSetter interface {
	SetPlan(account string, p billing.Plan)
}

// Deps are the services behind the pages. MCP is optional.
type Deps struct {
	Logger        *logging.Logger
	NewController ControllerFactory
	Uploads       *upload.Service
	Candidates    repository.CandidateRepository
	Outreach      *outreach.Service
	Background    *background.Service
	Sheets        *export.SheetsExporter
	Plans         PlanSetter
	DefaultPlan   billing.Plan
	MCP           http.Handler

	// SessionTTL and MaxSessions bound the in-memory sessions; zero selects the defaults
	SessionTTL  time.Duration
	MaxSessions int
}

// Handler serves every page of the front-end
type Handler struct {
	logger     *logging.Logger
	uploads    *upload.Service
	candidates repository.CandidateRepository
	outreach   *outreach.Service
	background *background.Service
	sheets     *export.SheetsExporter
	plans      PlanSetter
	mcp        http.Handler

	sessions *sessionStore
	views    *renderer
}

func NewHandler(deps Deps) (*Handler, error) {
	switch {
	case deps.NewController == nil:
		return nil, errors.New("web: controller factory is required")
	case deps.Uploads == nil:
		return nil, errors.New("web: upload service is required")
	case deps.Candidates == nil:
		return nil, errors.New("web: candidate repository is required")
	case deps.Outreach == nil:
		return nil, errors.New("web: outreach service is required")
	case deps.Background == nil:
		return nil, errors.New("web: background check service is required")
	case deps.Plans == nil:
		return nil, errors.New("web: plan setter is required")
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	if deps.Sheets == nil {
		deps.Sheets = export.NewSheetsExporter(nil)
	}
	if deps.DefaultPlan.ID == "" {
		deps.DefaultPlan = billing.Plans()[0]
	}

	views, err := newRenderer()
	if err != nil {
		return nil, err
	}

	return &Handler{
		logger:     deps.Logger.Named("web"),
		uploads:    deps.Uploads,
		candidates: deps.Candidates,
		outreach:   deps.Outreach,
		background: deps.Background,
		sheets:     deps.Sheets,
		plans:      deps.Plans,
		mcp:        deps.MCP,
		sessions:   newSessionStore(deps.NewController, deps.DefaultPlan, deps.SessionTTL, deps.MaxSessions),
		views:      views,
	}, nil
}

// StartSessionJanitor drops idle sessions every interval until the returned stop is called
func (h *Handler) StartSessionJanitor(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if n := h.sessions.sweep(); n > 0 {
					h.logger.Debug("idle sessions dropped", "count", n, "left", h.sessions.len())
				}
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Router returns the HTTP routes wrapped in request logging
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /healthz", h.handleHealth)

	mux.HandleFunc("GET /search", h.handleSearchPage)
	mux.HandleFunc("POST /search", h.handleSearchSubmit)
	mux.HandleFunc("POST /search/filters", h.handleToggleFilter)
	mux.HandleFunc("GET /export.xlsx", h.handleExportXLSX)
	mux.HandleFunc("POST /export/sheets", h.handleExportSheets)

	mux.HandleFunc("GET /candidates/{id}", h.handleCandidate)
	mux.HandleFunc("POST /candidates/{id}/outreach", h.handleOutreach)

	mux.HandleFunc("GET /upload", h.handleUploadPage)
	mux.HandleFunc("POST /upload", h.handleUpload)

	mux.HandleFunc("GET /dashboard", h.handleDashboard)

	mux.HandleFunc("GET /background-checks", h.handleBackgroundPage)
	mux.HandleFunc("POST /background-checks/initiate", h.handleInitiateChecks)
	mux.HandleFunc("POST /background-checks/{id}/complete", h.handleCompleteCheck)
	mux.HandleFunc("POST /background-checks/import", h.handleImportRoster)
	mux.HandleFunc("GET /background-checks/sample.csv", h.handleSampleRoster)
	mux.HandleFunc("GET /background-checks/review", h.handleReviewPage)
	mux.HandleFunc("POST /background-checks/review/{id}/notes", h.handleReviewNote)
	mux.HandleFunc("POST /background-checks/review/approve", h.handleApproveFlagged)
	mux.HandleFunc("GET /background-checks/{id}", h.handleEmployee)

	mux.HandleFunc("GET /pricing", h.handlePricing)
	mux.HandleFunc("POST /pricing/subscribe", h.handleSubscribe)

	if h.mcp != nil {
		mux.Handle("/mcp/stream", h.mcp)
	}

	return requestLogger(h.logger, mux)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/search", http.StatusSeeOther)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// session resolves the caller's session or writes a 500
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	s, err := h.sessions.get(w, r)
	if err != nil {
		h.logger.Error("failed to create session", "err", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

func (h *Handler) base(s *session, title, nav string) base {
	return base{
		Title: title,
		Nav:   nav,
		Flash: s.takeFlash(),
		Plan:  s.currentPlan(),
	}
}

func (h *Handler) page(w http.ResponseWriter, status int, name string, data any) {
	if err := h.views.render(w, status, name, data); err != nil {
		h.logger.Error("render failed", "page", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

type errorPage struct {
	base
	Status  int
	Message string
}

func (h *Handler) fail(w http.ResponseWriter, s *session, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Warn("request failed", "status", status, "err", err)
	}
	data := errorPage{
		base:    h.base(s, fmt.Sprintf("%d %s", status, http.StatusText(status)), ""),
		Status:  status,
		Message: err.Error(),
	}
	h.page(w, status, "error", data)
}

// statusFor maps domain errors to HTTP statuses. Anything unrecognized came from a backend.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedFile), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusPaymentRequired
	case errors.Is(err, export.ErrSheetsNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
