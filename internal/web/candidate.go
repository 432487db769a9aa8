package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/candidate"
	"github.com/honeycarbs/talent-search/internal/repository"
)

const relatedLimit = 3

type candidatePage struct {
	base
	Candidate domain.Candidate
	Questions []string
	Draft     string
	Related   []repository.RelatedCandidate
}

// findCandidate looks in the session's own results first, since sample candidates are never stored
func (h *Handler) findCandidate(ctx context.Context, s *session, id domain.CandidateID) (domain.Candidate, error) {
	for _, c := range s.ctrl.Snapshot().Results {
		if c.ID == id {
			return c, nil
		}
	}
	for _, c := range s.batch.Items() {
		if c.ID == id {
			return c, nil
		}
	}
	return h.candidates.FindByID(ctx, id)
}

func (h *Handler) handleCandidate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	c, err := h.findCandidate(r.Context(), s, domain.CandidateID(r.PathValue("id")))
	if err != nil {
		h.fail(w, s, statusFor(err), err)
		return
	}

	draft, err := h.outreach.Draft(r.Context(), c)
	if err != nil {
		h.logger.Warn("outreach draft failed", "candidate", c.ID, "err", err)
	}

	related, err := h.candidates.FindRelated(r.Context(), c, relatedLimit)
	if err != nil {
		h.logger.Warn("related candidates lookup failed", "candidate", c.ID, "err", err)
	}

	data := candidatePage{
		base:      h.base(s, c.Name, "search"),
		Candidate: c,
		Questions: candidate.ScreeningQuestions(c.Skills),
		Draft:     draft,
		Related:   related,
	}
	h.page(w, http.StatusOK, "candidate", data)
}

func (h *Handler) handleOutreach(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	c, err := h.findCandidate(r.Context(), s, domain.CandidateID(r.PathValue("id")))
	if err != nil {
		h.fail(w, s, statusFor(err), err)
		return
	}

	if err := h.outreach.Send(r.Context(), c, r.FormValue("body")); err != nil {
		h.fail(w, s, statusFor(err), err)
		return
	}

	s.setFlash(fmt.Sprintf("Email sent successfully to %s", c.Email))
	http.Redirect(w, r, "/candidates/"+string(c.ID), http.StatusSeeOther)
}
