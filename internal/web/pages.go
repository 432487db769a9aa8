package web

import (
	"fmt"
	"net/http"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/background"
	"github.com/honeycarbs/talent-search/internal/domain/billing"
	"github.com/honeycarbs/talent-search/internal/domain/dashboard"
	"github.com/honeycarbs/talent-search/internal/fixtures"
)

type dashboardPage struct {
	base
	Stats  dashboard.Stats
	Sample bool
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	cs, err := h.candidates.ListCandidates(r.Context())
	if err != nil {
		h.fail(w, s, http.StatusInternalServerError, err)
		return
	}
	sample := len(cs) == 0
	if sample {
		cs = fixtures.Candidates()
	}

	h.page(w, http.StatusOK, "dashboard", dashboardPage{
		base:   h.base(s, "Dashboard", "dashboard"),
		Stats:  dashboard.Build(cs),
		Sample: sample,
	})
}

type backgroundPage struct {
	base
	Term      string
	Employees []background.Employee
	Counts    background.Counts
	Template  string
}

func (h *Handler) renderBackground(w http.ResponseWriter, r *http.Request, s *session, status int, notice string) {
	term := r.URL.Query().Get("q")
	data := backgroundPage{
		base:      h.base(s, "Background Checks", "background"),
		Term:      term,
		Employees: h.background.List(term),
		Counts:    h.background.Counts(),
		Template:  background.DefaultTemplate,
	}
	data.Notice = notice
	h.page(w, status, "background", data)
}

func (h *Handler) handleBackgroundPage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.renderBackground(w, r, s, http.StatusOK, "")
}

func (h *Handler) handleInitiateChecks(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderBackground(w, r, s, http.StatusBadRequest, err.Error())
		return
	}

	var types []background.CheckType
	for _, v := range r.PostForm["check"] {
		t, err := background.ParseCheckType(v)
		if err != nil {
			h.renderBackground(w, r, s, http.StatusBadRequest, err.Error())
			return
		}
		types = append(types, t)
	}

	ids := r.PostForm["employee"]
	started, err := h.background.Initiate(r.Context(), ids, types, r.PostFormValue("template"))
	if err != nil {
		h.renderBackground(w, r, s, statusFor(err), err.Error())
		return
	}

	s.setFlash(fmt.Sprintf("Verification emails sent for %d employee(s)", len(started)))
	http.Redirect(w, r, "/background-checks", http.StatusSeeOther)
}

func (h *Handler) handleCompleteCheck(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	outcome, err := background.ParseOutcome(r.FormValue("outcome"))
	if err != nil {
		h.renderBackground(w, r, s, http.StatusBadRequest, err.Error())
		return
	}
	e, err := h.background.Complete(r.PathValue("id"), outcome)
	if err != nil {
		h.renderBackground(w, r, s, statusFor(err), err.Error())
		return
	}

	s.setFlash(fmt.Sprintf("%s marked %s", e.Name, e.Status.Label()))
	http.Redirect(w, r, "/background-checks", http.StatusSeeOther)
}

type pricingPage struct {
	base
	Plans []billing.Plan
}

func (h *Handler) handlePricing(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.page(w, http.StatusOK, "pricing", pricingPage{
		base:  h.base(s, "Pricing", "pricing"),
		Plans: billing.Plans(),
	})
}

// handleSubscribe switches the session's plan. Payment is handled elsewhere.
func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	p, err := billing.Lookup(r.FormValue("plan"))
	if err != nil {
		h.fail(w, s, http.StatusBadRequest, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	s.setPlan(p)
	h.plans.SetPlan(s.id, p)
	h.logger.Info("plan selected", "session", s.id, "plan", p.ID)

	s.setFlash(billing.SubscriptionNotice(p))
	http.Redirect(w, r, "/pricing", http.StatusSeeOther)
}
