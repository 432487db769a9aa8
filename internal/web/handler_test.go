package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/background"
	"github.com/honeycarbs/talent-search/internal/domain/billing"
	"github.com/honeycarbs/talent-search/internal/domain/search"
	"github.com/honeycarbs/talent-search/internal/domain/upload"
	"github.com/honeycarbs/talent-search/internal/fixtures"
	"github.com/honeycarbs/talent-search/internal/outreach"
	"github.com/honeycarbs/talent-search/internal/storage/memory"
)

type stubProvider struct {
	mu     sync.Mutex
	calls  int
	result domain.SearchResult
	err    error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Search(context.Context, string) (domain.SearchResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.result, p.err
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type stubUploader struct {
	mu  sync.Mutex
	n   int
	err error
}

func (u *stubUploader) Upload(_ context.Context, filename string, r io.Reader) (domain.Candidate, error) {
	if u.err != nil {
		return domain.Candidate{}, u.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return domain.Candidate{}, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.n++
	return domain.Candidate{
		ID:           domain.CandidateID("up-" + filename),
		Name:         "Uploaded " + filename,
		Skills:       []string{"Go"},
		UploadStatus: domain.UploadParsed,
	}, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Message
}

func (n *recordingNotifier) Send(_ context.Context, msg domain.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) messages() []domain.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Message(nil), n.sent...)
}

type env struct {
	provider *stubProvider
	uploader *stubUploader
	notifier *recordingNotifier
	repo     *memory.CandidateRepository
	handler  *Handler
	server   *httptest.Server
	client   *http.Client
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		provider: &stubProvider{err: errors.New("connection refused")},
		uploader: &stubUploader{},
		notifier: &recordingNotifier{},
	}

	repo := memory.NewCandidateRepository()
	e.repo = repo
	quota := upload.NewMemoryQuota(billing.Plans()[0])
	uploads, err := upload.NewService(e.uploader, nil, quota, repo, nil)
	if err != nil {
		t.Fatalf("upload.NewService: %v", err)
	}
	checks, err := background.NewService(e.notifier, nil, nil)
	if err != nil {
		t.Fatalf("background.NewService: %v", err)
	}

	h, err := NewHandler(Deps{
		NewController: func() (*search.Controller, error) {
			return search.NewController(search.WithProvider(e.provider), search.WithFallback(fixtures.ByScore))
		},
		Uploads:    uploads,
		Candidates: repo,
		Outreach:   outreach.NewService(outreach.Template{}, e.notifier, nil),
		Background: checks,
		Plans:      quota,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	e.handler = h
	e.server = httptest.NewServer(h.Router())
	t.Cleanup(e.server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	e.client = &http.Client{Jar: jar}
	return e
}

func (e *env) get(t *testing.T, path string) (*http.Response, *goquery.Document) {
	t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp, document(t, resp)
}

func (e *env) post(t *testing.T, path string, form url.Values) (*http.Response, *goquery.Document) {
	t.Helper()
	resp, err := e.client.PostForm(e.server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp, document(t, resp)
}

func (e *env) upload(t *testing.T, files map[string]string) (*http.Response, *goquery.Document) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, contentType := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		_, _ = part.Write([]byte("resume"))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("multipart close: %v", err)
	}

	resp, err := e.client.Post(e.server.URL+"/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST /upload: %v", err)
	}
	return resp, document(t, resp)
}

func document(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func ids(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.AttrOr("data-id", ""))
	})
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearchFallbackShowsSamplesByScore(t *testing.T) {
	e := newEnv(t)

	resp, doc := e.post(t, "/search", url.Values{"query": {"React developer in Bangalore"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after redirect, got %d", resp.StatusCode)
	}

	if got := ids(doc, ".card"); !equal(got, []string{"5", "1", "4", "2", "3"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if notice := strings.TrimSpace(doc.Find("#notice").Text()); notice != search.FallbackNotice {
		t.Fatalf("unexpected notice %q", notice)
	}
	if score := doc.Find(".card").First().Find(".score").Text(); score != "94%" {
		t.Fatalf("unexpected top score %q", score)
	}
	highlighted := doc.Find(`.card[data-id="1"] .skill.highlight`).Text()
	if highlighted != "React" {
		t.Fatalf("expected React highlighted, got %q", highlighted)
	}
	if doc.Find("#analysis").Length() != 0 {
		t.Fatal("analysis must be cleared on fallback")
	}
}

func TestSearchBlankQueryIgnored(t *testing.T) {
	e := newEnv(t)

	_, doc := e.post(t, "/search", url.Values{"query": {"   "}})

	if n := e.provider.callCount(); n != 0 {
		t.Fatalf("expected no backend call, got %d", n)
	}
	if doc.Find(".card").Length() != 0 || doc.Find("#notice").Length() != 0 {
		t.Fatal("blank query must not change results")
	}
}

func TestSearchSuccessShowsAnalysis(t *testing.T) {
	e := newEnv(t)
	e.provider.err = nil
	e.provider.result = domain.SearchResult{
		Matches: []domain.Candidate{
			{ID: "a", Name: "Ana", Skills: []string{"Go", "Kafka"}, MatchScore: 91},
			{ID: "b", Name: "Ben", Skills: []string{"Rust"}, MatchScore: 55},
		},
		Analysis: "Two strong matches",
	}

	_, doc := e.post(t, "/search", url.Values{"query": {"go engineer"}})

	if got := ids(doc, ".card"); !equal(got, []string{"a", "b"}) {
		t.Fatalf("unexpected results %v", got)
	}
	if !strings.Contains(doc.Find("#analysis").Text(), "Two strong matches") {
		t.Fatal("analysis not rendered")
	}
	if doc.Find(".card .location").First().Text() != domain.RemoteLocation {
		t.Fatalf("expected Remote location, got %q", doc.Find(".card .location").First().Text())
	}

	// remembered results resolve on the detail page
	resp, _ := e.get(t, "/candidates/a")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected detail for searched candidate, got %d", resp.StatusCode)
	}
}

func TestFilterToggle(t *testing.T) {
	e := newEnv(t)
	e.post(t, "/search", url.Values{"query": {"anything"}})

	_, doc := e.post(t, "/search/filters", url.Values{"tag": {"Mumbai"}})
	if got := ids(doc, ".card"); !equal(got, []string{"5"}) {
		t.Fatalf("expected only Mumbai candidate, got %v", got)
	}
	if on := doc.Find(".chip.on").Text(); on != "Mumbai" {
		t.Fatalf("expected Mumbai chip active, got %q", on)
	}

	_, doc = e.post(t, "/search/filters", url.Values{"tag": {"Mumbai"}})
	if got := ids(doc, ".card"); len(got) != 5 {
		t.Fatalf("toggling twice must restore all results, got %v", got)
	}

	e.post(t, "/search/filters", url.Values{"tag": {"Java"}})
	_, doc = e.post(t, "/search/filters", url.Values{"clear": {"1"}})
	if got := ids(doc, ".card"); len(got) != 5 || doc.Find(".chip.on").Length() != 0 {
		t.Fatalf("clear must drop filters, got %v", got)
	}
}

func TestTableView(t *testing.T) {
	e := newEnv(t)
	e.post(t, "/search", url.Values{"query": {"java"}})

	_, doc := e.get(t, "/search?view=table")
	if got := ids(doc, "tr.row"); !equal(got, []string{"5", "1", "4", "2", "3"}) {
		t.Fatalf("table must show the same records, got %v", got)
	}
	more := doc.Find(`tr.row[data-id="3"] .skill.more`).Text()
	if more != "+3" {
		t.Fatalf("expected +3 for six skills, got %q", more)
	}

	// the view sticks until changed
	_, doc = e.get(t, "/search")
	if doc.Find("tr.row").Length() != 5 {
		t.Fatal("table view not kept")
	}
	_, doc = e.get(t, "/search?view=bogus")
	if doc.Find("tr.row").Length() != 5 {
		t.Fatal("unknown view must be ignored")
	}
}

func TestUploadFlow(t *testing.T) {
	e := newEnv(t)

	_, doc := e.get(t, "/upload")
	if got := ids(doc, "#parsed .card"); !equal(got, []string{"1", "2", "3"}) {
		t.Fatalf("expected first three samples, got %v", got)
	}

	resp, doc := e.upload(t, map[string]string{"cv.pdf": "application/pdf"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := ids(doc, "#parsed .card"); len(got) != 4 || got[0] != "up-cv.pdf" {
		t.Fatalf("upload must be prepended, got %v", got)
	}
	if !strings.Contains(doc.Find("#usage").Text(), "1 of 3") {
		t.Fatalf("unexpected usage %q", doc.Find("#usage").Text())
	}
}

func TestUploadErrors(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		setup  func(*env)
		status int
	}{
		{
			name:   "unsupported type",
			files:  map[string]string{"notes.txt": "text/plain"},
			status: http.StatusBadRequest,
		},
		{
			name:   "no files",
			files:  map[string]string{},
			status: http.StatusBadRequest,
		},
		{
			name:   "backend failure",
			files:  map[string]string{"cv.docx": ""},
			setup:  func(e *env) { e.uploader.err = errors.New("502 from parser") },
			status: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			if tt.setup != nil {
				tt.setup(e)
			}
			resp, doc := e.upload(t, tt.files)
			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.StatusCode)
			}
			if doc.Find("#notice").Length() == 0 {
				t.Fatal("expected a notice")
			}
		})
	}
}

func TestUploadQuotaAndSubscribe(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.upload(t, map[string]string{"a.pdf": "application/pdf", "b.pdf": "application/pdf", "c.pdf": "application/pdf"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected three uploads on the free plan, got %d", resp.StatusCode)
	}
	resp, _ = e.upload(t, map[string]string{"d.pdf": "application/pdf"})
	if resp.StatusCode != http.StatusPaymentRequired {
		t.Fatalf("expected 402 over quota, got %d", resp.StatusCode)
	}

	_, doc := e.post(t, "/pricing/subscribe", url.Values{"plan": {"premier"}})
	if flash := doc.Find("#flash").Text(); flash != "Processing Premier plan subscription for ₹6,000" {
		t.Fatalf("unexpected flash %q", flash)
	}
	if cur := doc.Find(`[data-plan="premier"] button`).Text(); cur != "Current Plan" {
		t.Fatalf("premier not marked current: %q", cur)
	}

	resp, _ = e.upload(t, map[string]string{"d.pdf": "application/pdf"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected upload after upgrade, got %d", resp.StatusCode)
	}

	resp, _ = e.post(t, "/pricing/subscribe", url.Values{"plan": {"platinum"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown plan, got %d", resp.StatusCode)
	}
}

func TestCandidateDetailAndOutreach(t *testing.T) {
	e := newEnv(t)
	e.post(t, "/search", url.Values{"query": {"react"}})

	_, doc := e.get(t, "/candidates/1")
	if name := doc.Find("#profile h1").Text(); name != "Rahul Sharma" {
		t.Fatalf("unexpected profile %q", name)
	}
	if doc.Find("#questions li").Length() == 0 {
		t.Fatal("expected screening questions")
	}
	if !strings.Contains(doc.Find("#outreach textarea").Text(), "Rahul Sharma") {
		t.Fatal("expected outreach draft addressed to the candidate")
	}

	_, doc = e.post(t, "/candidates/1/outreach", url.Values{"body": {"Hello Rahul"}})
	if flash := doc.Find("#flash").Text(); flash != "Email sent successfully to rahul.sharma@example.com" {
		t.Fatalf("unexpected flash %q", flash)
	}
	if sent := e.notifier.messages(); len(sent) != 1 || sent[0].Body != "Hello Rahul" {
		t.Fatalf("unexpected sent mail %+v", sent)
	}

	resp, _ := e.get(t, "/candidates/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCandidateDetailShowsRelated(t *testing.T) {
	e := newEnv(t)
	if err := e.repo.UpsertCandidates(context.Background(), fixtures.Candidates()); err != nil {
		t.Fatalf("UpsertCandidates: %v", err)
	}

	_, doc := e.get(t, "/candidates/1")
	items := doc.Find("#related li")
	if items.Length() != 3 {
		t.Fatalf("expected 3 related candidates, got %d", items.Length())
	}
	if id, _ := items.First().Attr("data-id"); id != "5" {
		t.Fatalf("expected Vikram first, got %q", id)
	}
	if !strings.Contains(items.First().Text(), "React, AWS") {
		t.Fatalf("expected shared skills, got %q", items.First().Text())
	}
}

func TestExportXLSX(t *testing.T) {
	e := newEnv(t)
	e.post(t, "/search", url.Values{"query": {"python"}})
	e.post(t, "/search/filters", url.Values{"tag": {"Python"}})

	resp, err := e.client.Get(e.server.URL + "/export.xlsx")
	if err != nil {
		t.Fatalf("GET /export.xlsx: %v", err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("Content-Type") != xlsxContentType {
		t.Fatalf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Candidates")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "Vikram Singh" {
		t.Fatalf("expected only the visible candidate, got %v", rows)
	}
}

func TestExportSheetsNotConfigured(t *testing.T) {
	e := newEnv(t)
	resp, _ := e.post(t, "/export/sheets", url.Values{"spreadsheet_id": {"doc"}})
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestBackgroundChecks(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.post(t, "/background-checks/initiate", url.Values{"employee": {"4"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without check type, got %d", resp.StatusCode)
	}

	_, doc := e.post(t, "/background-checks/initiate", url.Values{"employee": {"4"}, "check": {"both"}})
	if flash := doc.Find("#flash").Text(); flash != "Verification emails sent for 1 employee(s)" {
		t.Fatalf("unexpected flash %q", flash)
	}
	if status := doc.Find(`#employees tr[data-id="4"] .status`).Text(); status != "In Progress" {
		t.Fatalf("unexpected status %q", status)
	}

	_, doc = e.post(t, "/background-checks/4/complete", url.Values{"outcome": {"verified"}})
	if flash := doc.Find("#flash").Text(); flash != "Vikram Patel marked Verified" {
		t.Fatalf("unexpected flash %q", flash)
	}

	_, doc = e.get(t, "/background-checks?q=designer")
	if got := ids(doc, "#employees tr[data-id]"); !equal(got, []string{"3"}) {
		t.Fatalf("unexpected search result %v", got)
	}
}

func TestDashboardUsesSamplesWhenEmpty(t *testing.T) {
	e := newEnv(t)

	_, doc := e.get(t, "/dashboard")
	if total := doc.Find("#total").Text(); total != "5" {
		t.Fatalf("unexpected total %q", total)
	}
	if top := doc.Find("#top-skill").Text(); top != "React" {
		t.Fatalf("unexpected top skill %q", top)
	}
}

func TestSessionCookie(t *testing.T) {
	e := newEnv(t)

	resp, err := http.Get(e.server.URL + "/search")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie && c.HttpOnly && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected session cookie")
	}

	resp, err = http.Get(e.server.URL + "/healthz")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: %v %v", resp, err)
	}
	resp.Body.Close()
}

func TestMentions(t *testing.T) {
	tests := []struct {
		query, skill string
		want         bool
	}{
		{"React developer", "React", true},
		{"REACT developer", "react", true},
		{"ｒｅａｃｔ dev", "React", true},
		{"java", "JavaScript", false},
		{"anything", "  ", false},
	}
	for _, tt := range tests {
		if got := mentions(tt.query, tt.skill); got != tt.want {
			t.Fatalf("mentions(%q, %q) = %v, want %v", tt.query, tt.skill, got, tt.want)
		}
	}
}
