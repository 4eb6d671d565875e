package handlers

import (
	"net/http"
	"strings"

	"github.com/karanvs/se-portal/internal/auth"
	"github.com/rs/zerolog/log"
)

// PageHandler serves the homepage and the crawler files.
type PageHandler struct{}

// NewPageHandler creates a new PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home handles GET /. Authenticated visitors go straight to the dashboard;
// everyone else gets the landing page with the login form.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	renderPage(w, r, "index", nil)
}

// Crawler serves robots.txt and sitemap.xml verbatim for search engine bots.
func (h *PageHandler) Crawler(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	body, err := staticFS.ReadFile("static/" + name)
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("Missing embedded static file")
		http.NotFound(w, r)
		return
	}

	if strings.HasSuffix(name, ".xml") {
		w.Header().Set("Content-Type", "application/xml")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Write(body)
}
