package backend

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/candidate"
	"github.com/honeycarbs/talent-search/pkg/talentapi"
)

// apiClient describes the subset of the backend client used by the provider.
type apiClient interface {
	Search(ctx context.Context, query string) (talentapi.SearchResponse, error)
	ListCandidates(ctx context.Context) ([]talentapi.Record, error)
	UploadResume(ctx context.Context, filename string, r io.Reader) (talentapi.Record, error)
}

// Provider adapts the backend API to the domain. Records are normalized here, as soon as they
// are received.
type Provider struct {
	client apiClient
}

// NewProvider builds a backend provider
func NewProvider(client apiClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("backend provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "backend"
}

// Search queries the backend and returns normalized matches
func (p *Provider) Search(ctx context.Context, query string) (domain.SearchResult, error) {
	resp, err := p.client.Search(ctx, query)
	if err != nil {
		return domain.SearchResult{}, err
	}

	matches, err := candidate.NormalizeAll(resp.Matches)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("backend provider: search: %w", err)
	}

	return domain.SearchResult{Matches: matches, Analysis: plainText(resp.Analysis)}, nil
}

// plainText strips markup the backend may put in the analysis
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// List returns every candidate known to the backend
func (p *Provider) List(ctx context.Context) ([]domain.Candidate, error) {
	records, err := p.client.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	out, err := candidate.NormalizeAll(records)
	if err != nil {
		return nil, fmt.Errorf("backend provider: list: %w", err)
	}
	return out, nil
}

// Upload sends one resume for parsing and returns the parsed candidate
func (p *Provider) Upload(ctx context.Context, filename string, r io.Reader) (domain.Candidate, error) {
	rec, err := p.client.UploadResume(ctx, filename, r)
	if err != nil {
		return domain.Candidate{}, err
	}

	c, err := candidate.Normalize(rec)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("backend provider: upload: %w", err)
	}
	if c.UploadStatus == "" {
		c.UploadStatus = domain.UploadParsed
	}
	return c, nil
}
