package web

import (
	"fmt"
	"net/http"

	"github.com/honeycarbs/talent-search/internal/domain/background"
)

const maxRosterBytes = 1 << 20

type employeePage struct {
	base
	Employee background.Employee
}

func (h *Handler) handleEmployee(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	e, err := h.background.Get(r.PathValue("id"))
	if err != nil {
		h.fail(w, s, statusFor(err), err)
		return
	}
	h.page(w, http.StatusOK, "employee", employeePage{
		base:     h.base(s, e.Name, "background"),
		Employee: e,
	})
}

// handleImportRoster takes a CSV roster in the "roster" field
func (h *Handler) handleImportRoster(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRosterBytes)
	f, fh, err := r.FormFile("roster")
	if err != nil {
		h.renderBackground(w, r, s, http.StatusBadRequest, fmt.Sprintf("Failed to read roster: %v", err))
		return
	}
	defer f.Close()
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	added, err := h.background.Import(f)
	if err != nil {
		h.renderBackground(w, r, s, statusFor(err), err.Error())
		return
	}

	h.logger.Info("roster uploaded", "file", fh.Filename, "employees", len(added))
	s.setFlash(fmt.Sprintf("Imported %d employee(s)", len(added)))
	http.Redirect(w, r, "/background-checks", http.StatusSeeOther)
}

func (h *Handler) handleSampleRoster(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="employee_sample.csv"`)
	_, _ = w.Write([]byte(background.SampleRoster))
}

type reviewPage struct {
	base
	Flagged  []background.Employee
	Critical int
}

func (h *Handler) renderReview(w http.ResponseWriter, s *session, status int, notice string) {
	data := reviewPage{
		base:    h.base(s, "Admin Review", "background"),
		Flagged: h.background.Flagged(),
	}
	for _, e := range data.Flagged {
		if e.Status == background.Critical {
			data.Critical++
		}
	}
	data.Notice = notice
	h.page(w, status, "review", data)
}

func (h *Handler) handleReviewPage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.renderReview(w, s, http.StatusOK, "")
}

func (h *Handler) handleReviewNote(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	e, err := h.background.AddNote(r.PathValue("id"), r.FormValue("note"))
	if err != nil {
		h.renderReview(w, s, statusFor(err), err.Error())
		return
	}

	s.setFlash("Notes saved for " + e.Name)
	http.Redirect(w, r, "/background-checks/review", http.StatusSeeOther)
}

func (h *Handler) handleApproveFlagged(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderReview(w, s, http.StatusBadRequest, err.Error())
		return
	}

	approved, err := h.background.Approve(r.PostForm["employee"])
	if err != nil {
		h.renderReview(w, s, statusFor(err), err.Error())
		return
	}

	s.setFlash(fmt.Sprintf("Approved %d check(s)", len(approved)))
	http.Redirect(w, r, "/background-checks/review", http.StatusSeeOther)
}
