package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"go-dealership/internal/model"
)

//go:embed templates
var templateFiles embed.FS

// Data is the payload every page render receives: the shared chrome
// (title, nav, flash, identity) plus page-specific content.
type Data struct {
	Title    string
	SiteName string
	Nav      []model.Classification
	Flash    string
	Identity *model.AccountIdentity
	Errors   []string
	Content  map[string]any
}

// Renderer holds the parsed template sets, one per page, each combined
// with the shared layout.
type Renderer struct {
	siteName string
	pages    map[string]*template.Template
}

func New(siteName string) (*Renderer, error) {
	names, err := fs.Glob(templateFiles, "templates/pages/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("glob page templates: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no page templates embedded")
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		page := strings.TrimSuffix(path.Base(name), ".gohtml")
		tmpl, err := template.New("layout.gohtml").Funcs(funcMap).
			ParseFS(templateFiles, "templates/layout.gohtml", name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		pages[page] = tmpl
	}

	return &Renderer{siteName: siteName, pages: pages}, nil
}

// Render executes the page into a buffer first so a template failure can
// still become a clean 500 instead of a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Data) {
	tmpl, ok := r.pages[page]
	if !ok {
		slog.Error("unknown page template", "page", page)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if data.SiteName == "" {
		data.SiteName = r.siteName
	}
	if data.Content == nil {
		data.Content = map[string]any{}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.gohtml", data); err != nil {
		slog.Error("render page", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

var funcMap = template.FuncMap{
	"usd":    FormatUSD,
	"commas": FormatCommas,
	"date":   func(t time.Time) string { return t.Format("January 2, 2006") },
}

// FormatUSD renders a price as "$28,045.00".
func FormatUSD(amount float64) string {
	cents := int64(amount*100 + 0.5)
	return "$" + FormatCommas(cents/100) + fmt.Sprintf(".%02d", cents%100)
}

// FormatCommas renders an integer with thousands separators.
func FormatCommas(n int64) string {
	raw := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(raw, "-")
	if neg {
		raw = raw[1:]
	}

	var b strings.Builder
	for i, digit := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
