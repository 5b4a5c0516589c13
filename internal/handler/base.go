package handler

import (
	"log/slog"
	"net/http"

	"go-dealership/internal/middleware"
	"go-dealership/internal/model"
	"go-dealership/internal/service"
	"go-dealership/internal/view"
)

// Base carries what every page render needs: the template renderer, the
// inventory service for the navigation bar, and the cookie security flag.
type Base struct {
	views     *view.Renderer
	inventory *service.InventoryService
	secure    bool
}

func NewBase(views *view.Renderer, inventory *service.InventoryService, secure bool) *Base {
	return &Base{views: views, inventory: inventory, secure: secure}
}

// render assembles the shared page chrome (nav, flash, identity) and
// executes the page template. A nav load failure degrades to an empty menu
// rather than failing the whole page.
func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, page, title string, errs []string, content map[string]any) {
	nav, err := b.inventory.Classifications(r.Context())
	if err != nil {
		slog.Error("load navigation classifications", "error", err)
		nav = nil
	}

	data := view.Data{
		Title:   title,
		Nav:     nav,
		Errors:  errs,
		Content: content,
	}

	if flash, ok := middleware.TakeFlash(w, r); ok {
		data.Flash = flash
	}
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		data.Identity = &identity
	}

	b.views.Render(w, status, page, data)
}

// renderError shows the generic error page.
func (b *Base) renderError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	b.render(w, r, status, "error", title, nil, map[string]any{"message": message})
}

// serverError logs the cause and shows the generic 500 page.
func (b *Base) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("handler error", "path", r.URL.Path, "error", err)
	b.renderError(w, r, http.StatusInternalServerError, "Server Error",
		"Sorry, something went wrong on our end. Please try again.")
}

// redirectWithFlash sets a consumed-once notice and redirects.
func (b *Base) redirectWithFlash(w http.ResponseWriter, r *http.Request, message, target string) {
	middleware.SetFlash(w, message, b.secure)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// identity returns the request identity; gated routes always have one, so
// a missing identity here is a wiring bug and renders as not authorized.
func (b *Base) identity(w http.ResponseWriter, r *http.Request) (model.AccountIdentity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		b.redirectWithFlash(w, r, "Please log in.", middleware.LoginPath)
		return model.AccountIdentity{}, false
	}
	return identity, true
}
