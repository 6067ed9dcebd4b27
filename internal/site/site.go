// Package site serves a local stand-in for the pages the suite exercises,
// so scenarios can run without reaching the public site.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

// Link is an anchor rendered in a list.
type Link struct {
	Href string
	Text string
}

// Option is one entry in a select element.
type Option struct {
	Value string
	Text  string
}

// Page is the data every template renders.
type Page struct {
	Title   string
	OnLoad  template.JS
	Links   []Link
	Options []Option
	Codes   []int
	Code    int
}

// StatusCodes lists the codes the status_codes page links to.
var StatusCodes = []int{200, 301, 404, 500}

// PageHandler renders one fixed page
type PageHandler struct {
	template *template.Template
	page     Page
	status   int
}

// NewPageHandler parses templates/<name>.html together with the shared layout.
func NewPageHandler(name string, page Page) (*PageHandler, error) {
	tmpl, err := parsePage(name)
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		template: tmpl,
		page:     page,
		status:   http.StatusOK,
	}, nil
}

func parsePage(name string) (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// ServeHTTP handles GET requests for the page
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	render(w, h.template, h.status, h.page)
}

// StatusCodeHandler answers status_codes/{code} with that status.
type StatusCodeHandler struct {
	template *template.Template
	allowed  map[int]bool
}

// NewStatusCodeHandler builds the handler for the given codes.
func NewStatusCodeHandler(codes []int) (*StatusCodeHandler, error) {
	tmpl, err := parsePage("status_code")
	if err != nil {
		return nil, err
	}
	allowed := make(map[int]bool, len(codes))
	for _, c := range codes {
		allowed[c] = true
	}
	return &StatusCodeHandler{template: tmpl, allowed: allowed}, nil
}

// ServeHTTP handles GET /status_codes/{code}
func (h *StatusCodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil || !h.allowed[code] {
		http.NotFound(w, r)
		return
	}
	render(w, h.template, code, Page{Title: "Status Codes", Code: code})
}

func render(w http.ResponseWriter, tmpl *template.Template, status int, page Page) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
