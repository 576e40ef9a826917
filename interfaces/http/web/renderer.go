// Package web renders the server-side HTML pages. Templates are embedded in
// the binary; every page shares the layout and receives a PageData.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"cookbook-backend/domain/core/entities"
	pkgerrors "cookbook-backend/pkg/errors"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// pages lists every renderable page template
var pages = []string{
	"index",
	"login",
	"register",
	"browse",
	"recipe_add",
	"recipe_edit",
	"recipe_detail",
	"my_recipes",
	"saved_recipes",
	"error",
}

// PageData is the payload handed to every template
type PageData struct {
	// User is the authenticated user, nil on public pages
	User *entities.User

	// Message carries the flash message for login/register forms and the
	// error text for the error page
	Message string

	// Data holds the page-specific payload
	Data interface{}
}

// Renderer renders embedded HTML templates
type Renderer struct {
	templates map[string]*template.Template
	logger    *zap.Logger
}

// NewRenderer parses the embedded templates
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.gohtml", "templates/"+page+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", page, err)
		}
		templates[page] = tmpl
	}
	return &Renderer{templates: templates, logger: logger}, nil
}

// Render writes the page with the given status. The template executes into a
// buffer first so a render failure never produces a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) {
	tmpl, ok := r.templates[page]
	if !ok {
		r.logger.Error("Unknown page template", zap.String("page", page))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("Failed to render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError renders the full-page error view for an application error,
// carrying the underlying message so the page says what failed.
func (r *Renderer) RenderError(w http.ResponseWriter, user *entities.User, err error) {
	status := http.StatusInternalServerError
	message := "something went wrong"

	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		if appErr.HTTPStatus != 0 {
			status = appErr.HTTPStatus
		}
		message = appErr.Message
		if appErr.Cause != nil {
			message = fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
		}
	} else if err != nil {
		message = err.Error()
	}

	r.logger.Error("Rendering error page", zap.Int("status", status), zap.Error(err))
	r.Render(w, status, "error", PageData{User: user, Message: message})
}
