package talentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	defaultBaseURL = "http://35.154.29.115:8000/api"
	defaultTimeout = 15 * time.Second

	searchPath = "search/search/"
	listPath   = "search/all/"
	uploadPath = "resume/upload/"

	errorBodyLimit = 4096
)

// Client talks to the resume parsing and semantic search backend.
// Every call is a single attempt.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient instantiates a backend client
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("talentapi: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("talentapi: base url %q must be absolute", baseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		// cookies set by the backend are sent back on later calls
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("talentapi: cookie jar: %w", err)
		}
		httpClient = &http.Client{Timeout: timeout, Jar: jar}
	}

	return &Client{baseURL: u, httpClient: httpClient}, nil
}

// BaseURL returns the configured backend root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Search runs a semantic search. Location and experience are sent as null.
func (c *Client) Search(ctx context.Context, query string) (SearchResponse, error) {
	if c == nil {
		return SearchResponse{}, fmt.Errorf("talentapi: client is nil")
	}

	body, err := json.Marshal(SearchRequest{Query: query})
	if err != nil {
		return SearchResponse{}, fmt.Errorf("talentapi: encode search: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(searchPath), bytes.NewReader(body))
	if err != nil {
		return SearchResponse{}, fmt.Errorf("talentapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out SearchResponse
	if err := c.do(req, searchPath, &out); err != nil {
		return SearchResponse{}, err
	}
	return out, nil
}

// ListCandidates fetches every parsed resume. The backend answers with a bare array or with
// the records wrapped under results or candidates.
func (c *Client) ListCandidates(ctx context.Context) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("talentapi: client is nil")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(listPath), nil)
	if err != nil {
		return nil, fmt.Errorf("talentapi: build request: %w", err)
	}

	var raw json.RawMessage
	if err := c.do(req, listPath, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []Record
		if err := decodeJSON(trimmed, &records); err != nil {
			return nil, fmt.Errorf("talentapi: %s: decode response: %w", listPath, err)
		}
		return records, nil
	}

	var env listEnvelope
	if err := decodeJSON(trimmed, &env); err != nil {
		return nil, fmt.Errorf("talentapi: %s: decode response: %w", listPath, err)
	}
	if env.Results != nil {
		return env.Results, nil
	}
	return env.Candidates, nil
}

// UploadResume sends one resume as multipart field "file" and returns the parsed record
func (c *Client) UploadResume(ctx context.Context, filename string, r io.Reader) (Record, error) {
	if c == nil {
		return nil, fmt.Errorf("talentapi: client is nil")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", path.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("talentapi: create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("talentapi: copy resume: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("talentapi: close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(uploadPath), &buf)
	if err != nil {
		return nil, fmt.Errorf("talentapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out Record
	if err := c.do(req, uploadPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) endpoint(p string) string {
	u := *c.baseURL
	// trailing slashes are significant for the backend routes
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + p
	return u.String()
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("talentapi: %s: request failed: %w", endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("talentapi: %s: read response: %w", endpoint, err)
	}
	if err := decodeJSON(body, out); err != nil {
		return fmt.Errorf("talentapi: %s: decode response: %w", endpoint, err)
	}
	return nil
}

// decodeJSON keeps numbers as json.Number so large ids survive
func decodeJSON(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}
