package talentapi

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds client settings
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // optional, overrides Timeout and the cookie jar
}

// Record is one candidate as sent by the backend, before normalization
type Record = map[string]any

// SearchRequest is the body of POST search/search/
type SearchRequest struct {
	Query           string  `json:"query"`
	Location        *string `json:"location"`
	ExperienceYears *int    `json:"experience_years"`
}

// SearchResponse is the body returned by search/search/
type SearchResponse struct {
	Matches  []Record `json:"matches"`
	Analysis string   `json:"analysis"`
}

// listEnvelope covers the wrapped shapes of search/all/
type listEnvelope struct {
	Results    []Record `json:"results"`
	Candidates []Record `json:"candidates"`
}

// StatusError is returned for any non-2xx response
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("talentapi: %s: API error (%d)", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("talentapi: %s: API error (%d): %s", e.Endpoint, e.StatusCode, e.Body)
}
