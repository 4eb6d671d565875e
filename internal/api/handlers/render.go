package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/karanvs/se-portal/internal/auth"
	"github.com/karanvs/se-portal/internal/models"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/robots.txt static/sitemap.xml
var staticFS embed.FS

// pages holds one parsed template set per page, each paired with the shared
// layout.
var pages = func() map[string]*template.Template {
	names := []string{"index", "signup", "dashboard", "game", "analytics"}
	m := make(map[string]*template.Template, len(names))
	for _, name := range names {
		m[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return m
}()

// pageData is the root object every template executes against.
type pageData struct {
	Flash string
	User  *models.User
	Data  any
}

// renderPage executes the named page template, attaching the pending flash
// message and the current user (when authenticated).
func renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	pd := pageData{
		Flash: PopFlash(w, r),
		Data:  data,
	}
	if user, ok := auth.CurrentUser(r.Context()); ok {
		pd.User = &user
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages[name].ExecuteTemplate(w, "layout", pd); err != nil {
		log.Error().Err(err).Str("page", name).Msg("Failed to render template")
	}
}
