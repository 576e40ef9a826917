package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"cookbook-backend/application/services"
	"cookbook-backend/interfaces/http/web"
	"cookbook-backend/pkg/auth"
	pkgerrors "cookbook-backend/pkg/errors"
	"cookbook-backend/pkg/utils"
)

// Fixed flash messages, shown at most once after a failed attempt
const (
	loginFailedMessage    = "Incorrect username or password"
	registerFailedMessage = "Username already in use"
)

// AuthHandler handles the landing page and the login/register/logout flows
type AuthHandler struct {
	accounts *services.AccountService
	sessions *auth.Manager
	renderer *web.Renderer
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	accounts *services.AccountService,
	sessions *auth.Manager,
	renderer *web.Renderer,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// credentialsRequest carries the login/register form fields
type credentialsRequest struct {
	Username string `validate:"required,min=1,max=60"`
	Password string `validate:"required,min=1"`
}

// Landing handles GET /
func (h *AuthHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.UserFromContext(r.Context()); err == nil {
		http.Redirect(w, r, "/browse", http.StatusFound)
		return
	}
	h.renderer.Render(w, http.StatusOK, "index", web.PageData{})
}

// ShowLogin handles GET /login. A pending flash flag is consumed here: the
// failure message renders on this response and never again.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.UserFromContext(r.Context()); err == nil {
		http.Redirect(w, r, "/browse", http.StatusFound)
		return
	}

	message := ""
	failed, err := h.sessions.ConsumeFailure(r, auth.FlowLogin)
	if err != nil {
		h.renderer.RenderError(w, nil, err)
		return
	}
	if failed {
		message = loginFailedMessage
	}
	h.renderer.Render(w, http.StatusOK, "login", web.PageData{Message: message})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, nil, pkgerrors.NewValidationError("invalid form submission"))
		return
	}

	req := credentialsRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.flagAndRedirect(w, r, auth.FlowLogin, "/login")
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if pkgerrors.IsUnauthorized(err) {
			h.flagAndRedirect(w, r, auth.FlowLogin, "/login")
			return
		}
		h.renderer.RenderError(w, nil, err)
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID().String()); err != nil {
		h.renderer.RenderError(w, nil, err)
		return
	}
	http.Redirect(w, r, "/browse", http.StatusFound)
}

// ShowRegister handles GET /register
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.UserFromContext(r.Context()); err == nil {
		http.Redirect(w, r, "/browse", http.StatusFound)
		return
	}

	message := ""
	failed, err := h.sessions.ConsumeFailure(r, auth.FlowRegister)
	if err != nil {
		h.renderer.RenderError(w, nil, err)
		return
	}
	if failed {
		message = registerFailedMessage
	}
	h.renderer.Render(w, http.StatusOK, "register", web.PageData{Message: message})
}

// Register handles POST /register. A taken username flags the registration
// flash and bounces back to the form; success sends the user to the login
// page to sign in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, nil, pkgerrors.NewValidationError("invalid form submission"))
		return
	}

	req := credentialsRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.flagAndRedirect(w, r, auth.FlowRegister, "/register")
		return
	}

	if _, err := h.accounts.Register(r.Context(), req.Username, req.Password); err != nil {
		if pkgerrors.IsConflict(err) {
			h.flagAndRedirect(w, r, auth.FlowRegister, "/register")
			return
		}
		h.renderer.RenderError(w, nil, err)
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	if err := h.sessions.SignOut(w, r); err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) flagAndRedirect(w http.ResponseWriter, r *http.Request, flow auth.Flow, target string) {
	if err := h.sessions.FlagFailure(w, r, flow); err != nil {
		h.logger.Error("Failed to set flash flag", zap.String("flow", string(flow)), zap.Error(err))
	}
	http.Redirect(w, r, target, http.StatusFound)
}
