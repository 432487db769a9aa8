package web

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/honeycarbs/talent-search/internal/domain/background"
)

func (e *env) importRoster(t *testing.T, body string) (*http.Response, *goquery.Document) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("roster", "employees.csv")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	_, _ = part.Write([]byte(body))
	if err := mw.Close(); err != nil {
		t.Fatalf("multipart close: %v", err)
	}

	resp, err := e.client.Post(e.server.URL+"/background-checks/import", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST /background-checks/import: %v", err)
	}
	return resp, document(t, resp)
}

func TestImportRoster(t *testing.T) {
	e := newEnv(t)

	resp, doc := e.importRoster(t, background.SampleRoster)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after redirect, got %d", resp.StatusCode)
	}
	if flash := doc.Find("#flash").Text(); flash != "Imported 3 employee(s)" {
		t.Fatalf("unexpected flash %q", flash)
	}
	got := ids(doc, "#employees tr[data-id]")
	if len(got) != 7 || got[0] != "EMP001" {
		t.Fatalf("unexpected roster %v", got)
	}

	resp, doc = e.importRoster(t, "Name,Designation\nA,B\n")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing columns, got %d", resp.StatusCode)
	}
	if notice := doc.Find("#notice").Text(); !strings.Contains(notice, "missing columns") {
		t.Fatalf("unexpected notice %q", notice)
	}
}

func TestSampleRosterDownload(t *testing.T) {
	e := newEnv(t)

	resp, err := e.client.Get(e.server.URL + "/background-checks/sample.csv")
	if err != nil {
		t.Fatalf("GET sample: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if string(body) != background.SampleRoster {
		t.Fatalf("unexpected sample %q", body)
	}
}

func TestEmployeeDetail(t *testing.T) {
	e := newEnv(t)

	_, doc := e.get(t, "/background-checks/1")
	if name := doc.Find("#name").Text(); name != "Priya Sharma" {
		t.Fatalf("unexpected name %q", name)
	}
	if status := doc.Find("#status").Text(); status != "Verified" {
		t.Fatalf("unexpected status %q", status)
	}
	rows := doc.Find("table.records tbody tr")
	if rows.Length() != 2 {
		t.Fatalf("expected education and employment rows, got %d", rows.Length())
	}
	if !strings.Contains(rows.First().Text(), "ABC University") || !strings.Contains(rows.Last().Text(), "XYZ Corp") {
		t.Fatalf("unexpected records %q", rows.Text())
	}

	_, doc = e.get(t, "/background-checks/4")
	if doc.Find("p.records.empty").Length() != 2 {
		t.Fatal("expected empty record sections")
	}

	resp, _ := e.get(t, "/background-checks/missing")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestReviewFlaggedChecks(t *testing.T) {
	e := newEnv(t)

	_, doc := e.get(t, "/background-checks/review")
	if got := ids(doc, "#flagged tr[data-id]"); !equal(got, []string{"3"}) {
		t.Fatalf("unexpected flagged %v", got)
	}

	_, doc = e.post(t, "/background-checks/review/3/notes", url.Values{"note": {"Registrar confirmed on call"}})
	if flash := doc.Find("#flash").Text(); flash != "Notes saved for Anita Singh" {
		t.Fatalf("unexpected flash %q", flash)
	}
	if note := doc.Find(`form.note[data-id="3"] textarea`).Text(); note != "Registrar confirmed on call" {
		t.Fatalf("unexpected note %q", note)
	}

	resp, _ := e.post(t, "/background-checks/review/1/notes", url.Values{"note": {"x"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unflagged employee, got %d", resp.StatusCode)
	}

	resp, _ = e.post(t, "/background-checks/review/approve", url.Values{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 with nothing selected, got %d", resp.StatusCode)
	}

	_, doc = e.post(t, "/background-checks/review/approve", url.Values{"employee": {"3"}})
	if flash := doc.Find("#flash").Text(); flash != "Approved 1 check(s)" {
		t.Fatalf("unexpected flash %q", flash)
	}
	if doc.Find("#empty").Length() != 1 {
		t.Fatal("expected empty review queue")
	}

	_, doc = e.get(t, "/background-checks/3")
	if status := doc.Find("#status").Text(); status != "Verified" {
		t.Fatalf("unexpected status %q", status)
	}
}
