package site

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pages maps each page path (relative to the site root) to its template and data.
var Pages = []struct {
	Path     string
	Template string
	Page     Page
}{
	{"add_remove_elements/", "add_remove_elements", Page{Title: "Add/Remove Elements"}},
	{"checkboxes", "checkboxes", Page{Title: "Checkboxes"}},
	{"dropdown", "dropdown", Page{Title: "Dropdown List", Options: []Option{
		{Value: "1", Text: "Option 1"},
		{Value: "2", Text: "Option 2"},
	}}},
	{"inputs", "inputs", Page{Title: "Inputs"}},
	{"status_codes", "status_codes", Page{Title: "Status Codes", Codes: StatusCodes}},
	{"drag_and_drop", "drag_and_drop", Page{Title: "Drag and Drop"}},
	{"shifting_content/menu", "menu", Page{Title: "Shifting Content: Menu Element", Links: []Link{
		{Href: "/", Text: "Home"},
		{Href: "/about/", Text: "About"},
		{Href: "/contact-us/", Text: "Contact Us"},
		{Href: "/portfolio/", Text: "Portfolio"},
		{Href: "/gallery/", Text: "Gallery"},
	}}},
	{"geolocation", "geolocation", Page{Title: "Geolocation"}},
	{"javascript_error", "javascript_error", Page{Title: "JavaScript onload event error", OnLoad: "loadError()"}},
	{"exit_intent", "exit_intent", Page{Title: "Exit Intent"}},
}

// NewRouter builds the stand-in site. Requests are logged at debug level.
func NewRouter(logger *zap.Logger) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	index := Page{Title: "Welcome to the-internet"}
	for _, p := range Pages {
		h, err := NewPageHandler(p.Template, p.Page)
		if err != nil {
			return nil, err
		}
		r.Handle("/"+p.Path, h)
		index.Links = append(index.Links, Link{Href: p.Path, Text: p.Page.Title})
	}
	r.Get("/add_remove_elements", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/add_remove_elements/", http.StatusMovedPermanently)
	})

	statusHandler, err := NewStatusCodeHandler(StatusCodes)
	if err != nil {
		return nil, err
	}
	r.Get("/status_codes/{code}", statusHandler.ServeHTTP)

	indexHandler, err := NewPageHandler("index", index)
	if err != nil {
		return nil, err
	}
	r.Handle("/", indexHandler)

	return r, nil
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("Request served",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}
