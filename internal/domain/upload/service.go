package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/repository"
	"github.com/honeycarbs/talent-search/pkg/logging"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var allowed = map[string]string{
	".pdf":  mimePDF,
	".docx": mimeDOCX,
}

// Uploader sends a resume to the parsing backend
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (domain.Candidate, error)
}

// Lister returns every candidate the backend has parsed
type Lister interface {
	List(ctx context.Context) ([]domain.Candidate, error)
}

// File is one resume to upload
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Validate accepts PDF and DOCX resumes only, judged by extension and, when the browser sent
// one, by content type
func Validate(name, contentType string) error {
	ext := strings.ToLower(filepath.Ext(name))
	want, ok := allowed[ext]
	if !ok {
		return fmt.Errorf("upload: %q: %w: please upload PDF or DOCX files only", name, domain.ErrUnsupportedFile)
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if contentType == "" || err != nil || mt == "application/octet-stream" {
		return nil
	}
	if mt != want {
		return fmt.Errorf("upload: %q has content type %s: %w", name, mt, domain.ErrUnsupportedFile)
	}
	return nil
}

// Service uploads resumes, meters them against the account quota and keeps the parsed
// candidates in the repository
type Service struct {
	uploader Uploader
	lister   Lister
	quota    Quota
	repo     repository.CandidateRepository
	logger   *logging.Logger
}

// NewService wires the upload flow
func NewService(uploader Uploader, lister Lister, quota Quota, repo repository.CandidateRepository, logger *logging.Logger) (*Service, error) {
	if uploader == nil {
		return nil, fmt.Errorf("upload.Service: uploader is required")
	}
	if quota == nil {
		return nil, fmt.Errorf("upload.Service: quota is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("upload.Service: repository is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{uploader: uploader, lister: lister, quota: quota, repo: repo, logger: logger}, nil
}

// Upload validates every file first, then uploads them one at a time. It returns the
// candidates parsed before the first failure along with that failure.
func (s *Service) Upload(ctx context.Context, account string, files ...File) ([]domain.Candidate, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("upload: %w: no files", domain.ErrInvalidInput)
	}
	for _, f := range files {
		if err := Validate(f.Name, f.ContentType); err != nil {
			return nil, err
		}
	}

	parsed := make([]domain.Candidate, 0, len(files))
	for _, f := range files {
		if err := s.quota.Reserve(ctx, account); err != nil {
			return parsed, err
		}

		c, err := s.uploader.Upload(ctx, f.Name, f.Body)
		if err != nil {
			s.quota.Release(ctx, account)
			s.logger.Warn("resume upload failed", "file", f.Name, "err", err)
			return parsed, fmt.Errorf("upload: %s: %w", f.Name, err)
		}
		if err := s.repo.UpsertCandidates(ctx, []domain.Candidate{c}); err != nil {
			return parsed, fmt.Errorf("upload: store %s: %w", c.ID, err)
		}
		parsed = append(parsed, c)
	}

	s.logger.Info("resumes parsed", "account", account, "count", len(parsed))
	return parsed, nil
}

// Sync pulls every candidate from the backend into the repository
func (s *Service) Sync(ctx context.Context) ([]domain.Candidate, error) {
	if s.lister == nil {
		return nil, errors.New("upload: no candidate lister configured")
	}

	cs, err := s.lister.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("upload: list candidates: %w", err)
	}
	if err := s.repo.UpsertCandidates(ctx, cs); err != nil {
		return nil, fmt.Errorf("upload: store candidates: %w", err)
	}
	return cs, nil
}

// Remember stores candidates seen elsewhere, e.g. in search results, so detail pages can find them
func (s *Service) Remember(ctx context.Context, cs []domain.Candidate) error {
	return s.repo.UpsertCandidates(ctx, cs)
}

// Usage reports uploads used and the plan limit for account
func (s *Service) Usage(ctx context.Context, account string) (int, int) {
	used, plan := s.quota.Usage(ctx, account)
	return used, plan.UploadLimit
}
