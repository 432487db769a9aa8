package web

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/upload"
	"github.com/honeycarbs/talent-search/internal/fixtures"
)

const maxUploadMemory = 32 << 20

type uploadPage struct {
	base
	Parsed []domain.Candidate
	Used   int
	Limit  int
}

func (h *Handler) renderUpload(w http.ResponseWriter, r *http.Request, s *session, status int, notice string) {
	used, limit := h.uploads.Usage(r.Context(), s.id)
	data := uploadPage{
		base:   h.base(s, "Upload Resumes", "upload"),
		Parsed: s.batch.Items(),
		Used:   used,
		Limit:  limit,
	}
	data.Notice = notice
	h.page(w, status, "upload", data)
}

func (h *Handler) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.renderUpload(w, r, s, http.StatusOK, "")
}

// handleUpload accepts one or more resumes in the "file" field. The "sample" field loads the
// sample candidates instead.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.renderUpload(w, r, s, http.StatusBadRequest, fmt.Sprintf("Failed to read upload: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	if r.FormValue("sample") != "" {
		s.batch.Replace(fixtures.Candidates())
		s.setFlash("Loaded sample resumes")
		http.Redirect(w, r, "/upload", http.StatusSeeOther)
		return
	}

	headers := r.MultipartForm.File["file"]
	files, closeAll, err := openAll(headers)
	defer closeAll()
	if err != nil {
		h.renderUpload(w, r, s, http.StatusBadRequest, err.Error())
		return
	}

	parsed, err := h.uploads.Upload(r.Context(), s.id, files...)
	s.batch.Prepend(parsed...)
	if err != nil {
		h.renderUpload(w, r, s, statusFor(err), err.Error())
		return
	}

	s.setFlash(fmt.Sprintf("Parsed %d resume(s)", len(parsed)))
	http.Redirect(w, r, "/upload", http.StatusSeeOther)
}

func openAll(headers []*multipart.FileHeader) ([]upload.File, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]upload.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		opened = append(opened, f)
		files = append(files, upload.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}
	return files, closeAll, nil
}
