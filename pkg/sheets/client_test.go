package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"
)

func TestA1Range(t *testing.T) {
	tests := []struct {
		tab, cells, want string
	}{
		{"Candidates", "A1", "'Candidates'!A1"},
		{"Q3 Hires", "A1", "'Q3 Hires'!A1"},
		{"Ops' list", "A1", "'Ops'' list'!A1"},
		{"Q3 Hires", "", "'Q3 Hires'"},
	}
	for _, tt := range tests {
		if got := A1Range(tt.tab, tt.cells); got != tt.want {
			t.Fatalf("A1Range(%q, %q) = %q, want %q", tt.tab, tt.cells, got, tt.want)
		}
	}
}

type recordedCall struct {
	method string
	path   string
	input  string
	body   string
}

func TestReplaceWritesRawValuesToQuotedTab(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []recordedCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recordedCall{
			method: r.Method,
			path:   r.URL.Path,
			input:  r.URL.Query().Get("valueInputOption"),
			body:   string(body),
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	c, err := newClient(context.Background(), option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("newClient: %v", err)
	}

	rows := [][]interface{}{{"Name", "Phone"}, {"=IMPORTXML(\"x\")", "+91 9876543210"}}
	if err := c.Replace(context.Background(), "sheet-1", "Q3 Hires", rows); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 {
		t.Fatalf("expected clear and update, got %+v", calls)
	}
	if !strings.HasSuffix(calls[0].path, "/values/'Q3 Hires':clear") {
		t.Fatalf("unexpected clear path %q", calls[0].path)
	}
	update := calls[1]
	if update.method != http.MethodPut || !strings.HasSuffix(update.path, "/values/'Q3 Hires'!A1") {
		t.Fatalf("unexpected update %s %q", update.method, update.path)
	}
	if update.input != "RAW" {
		t.Fatalf("expected RAW value input, got %q", update.input)
	}
	if !strings.Contains(update.body, "+91 9876543210") {
		t.Fatalf("row values not sent: %s", update.body)
	}
}
