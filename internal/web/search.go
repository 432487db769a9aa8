package web

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/honeycarbs/talent-search/internal/domain/search"
	"github.com/honeycarbs/talent-search/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type searchPage struct {
	base
	Snap          search.Snapshot
	SheetsEnabled bool
}

func (h *Handler) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if v, ok := search.ParseView(r.URL.Query().Get("view")); ok {
		s.ctrl.SetView(v)
	}

	snap := s.ctrl.Snapshot()
	data := searchPage{
		base:          h.base(s, "Search Candidates", "search"),
		Snap:          snap,
		SheetsEnabled: h.sheets.Configured(),
	}
	data.Notice = snap.Notice
	h.page(w, http.StatusOK, "search", data)
}

// handleSearchSubmit runs the query and redirects back to the results. The search outlives a
// disconnected client so its response still lands in the session.
func (h *Handler) handleSearchSubmit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	out := s.ctrl.SubmitQuery(context.WithoutCancel(r.Context()), r.FormValue("query"))
	if out.State == search.StateSuccess {
		snap := s.ctrl.Snapshot()
		if err := h.uploads.Remember(r.Context(), snap.Results); err != nil {
			h.logger.Warn("failed to remember search results", "err", err)
		}
	}

	http.Redirect(w, r, "/search", http.StatusSeeOther)
}

func (h *Handler) handleToggleFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	switch tag := strings.TrimSpace(r.FormValue("tag")); {
	case r.FormValue("clear") != "":
		s.ctrl.ClearFilters()
	case tag != "":
		s.ctrl.ToggleFilter(tag)
	}

	http.Redirect(w, r, "/search", http.StatusSeeOther)
}

func exportMeta(snap search.Snapshot) export.Meta {
	return export.Meta{
		Query:       snap.Query,
		Filters:     snap.ActiveFilters,
		Fallback:    snap.Fallback,
		GeneratedAt: time.Now(),
	}
}

// handleExportXLSX downloads the visible candidates
func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	snap := s.ctrl.Snapshot()
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, snap.Visible, exportMeta(snap)); err != nil {
		h.fail(w, s, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="candidates.xlsx"`)
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func (h *Handler) handleExportSheets(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	snap := s.ctrl.Snapshot()
	target := export.SheetsTarget{
		SpreadsheetID: strings.TrimSpace(r.FormValue("spreadsheet_id")),
		Tab:           r.FormValue("tab"),
		Append:        r.FormValue("append") != "",
	}
	res, err := h.sheets.Export(r.Context(), target, snap.Visible)
	if err != nil {
		h.fail(w, s, statusFor(err), err)
		return
	}

	s.setFlash(fmt.Sprintf("Exported %d candidate(s) to %s", res.WrittenRows, res.Tab))
	http.Redirect(w, r, "/search", http.StatusSeeOther)
}
