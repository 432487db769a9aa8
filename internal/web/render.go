package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/honeycarbs/talent-search/internal/domain/billing"
	"github.com/honeycarbs/talent-search/internal/domain/facet"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"search", "candidate", "upload", "dashboard", "background", "employee", "review", "pricing", "error"}

// base is embedded in every page's data
type base struct {
	Title  string
	Nav    string
	Flash  string
	Notice string
	Plan   billing.Plan
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	funcs := template.FuncMap{
		"mentions": mentions,
		"take":     take,
		"more":     more,
		"active":   facet.Contains,
		"limit":    uploadLimit,
		"join":     joinComma,
	}

	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("web: parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// render executes page into a buffer first so template errors still produce a clean 500
func (r *renderer) render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("web: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("web: render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}

// mentions reports whether query names skill, ignoring case and Unicode width forms
func mentions(query, skill string) bool {
	s := fold(skill)
	return s != "" && strings.Contains(fold(query), s)
}

func take(n int, items []string) []string {
	if n < len(items) {
		return items[:n]
	}
	return items
}

func more(n int, items []string) int {
	if len(items) > n {
		return len(items) - n
	}
	return 0
}

func uploadLimit(limit int) string {
	if limit == billing.Unlimited {
		return "unlimited"
	}
	return fmt.Sprint(limit)
}

func joinComma(ss []string) string {
	return strings.Join(ss, ", ")
}
