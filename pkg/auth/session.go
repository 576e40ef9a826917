package auth

import (
	"context"
	"net/http"
	"time"
)

// Flow identifies which form a flash flag belongs to. Login and registration
// carry independent flags.
type Flow string

const (
	FlowLogin    Flow = "login"
	FlowRegister Flow = "register"
)

// Flash is the one-shot failure signal carried across a redirect. It is an
// explicit enum rather than field presence: Unset renders the plain form,
// Failed renders the form with its message exactly once and returns to Unset.
type Flash int

const (
	FlashUnset Flash = iota
	FlashFailed
)

// Session is the server-side session record. UserID is empty for anonymous
// sessions, which exist so failed login/registration attempts have somewhere
// to park their flash flag before the user is authenticated.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// Authenticated reports whether the session belongs to a signed-in user
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// SessionStore abstracts server-side session persistence. Flash transitions
// are atomic from the caller's perspective: ConsumeFlash reads and clears in
// one step so a refresh after the clear never re-shows the message.
type SessionStore interface {
	// Create starts a new session for the given user ID (empty for anonymous)
	Create(ctx context.Context, userID string) (*Session, error)

	// Get retrieves a session by ID; nil when unknown or expired
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session
	Delete(ctx context.Context, id string) error

	// SetFlash marks the flow's flag as Failed on the given session
	SetFlash(ctx context.Context, id string, flow Flow) error

	// ConsumeFlash reads the flow's flag and clears it, returning the value read
	ConsumeFlash(ctx context.Context, id string, flow Flow) (Flash, error)
}

// Manager ties the session store to the cookie carrying the session ID.
type Manager struct {
	store      SessionStore
	cookieName string
	secure     bool
}

// NewManager creates a session manager
func NewManager(store SessionStore, cookieName string, secure bool) *Manager {
	return &Manager{
		store:      store,
		cookieName: cookieName,
		secure:     secure,
	}
}

// Current resolves the request's session from its cookie. Returns nil when
// there is no cookie or the store no longer knows the session.
func (m *Manager) Current(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, nil
	}
	return m.store.Get(r.Context(), cookie.Value)
}

// Ensure returns the request's session, creating an anonymous one (and
// setting its cookie) when none exists yet.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (*Session, error) {
	sess, err := m.Current(r)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		return sess, nil
	}
	sess, err = m.store.Create(r.Context(), "")
	if err != nil {
		return nil, err
	}
	m.setCookie(w, sess.ID)
	return sess, nil
}

// SignIn replaces any existing session with a fresh authenticated one.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	if old, err := m.Current(r); err == nil && old != nil {
		_ = m.store.Delete(r.Context(), old.ID)
	}
	sess, err := m.store.Create(r.Context(), userID)
	if err != nil {
		return err
	}
	m.setCookie(w, sess.ID)
	return nil
}

// SignOut deletes the session and expires the cookie.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.Current(r)
	if err != nil {
		return err
	}
	if sess != nil {
		if err := m.store.Delete(r.Context(), sess.ID); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// FlagFailure records a failed attempt for the flow on the request's session,
// creating an anonymous session if needed. The caller redirects afterwards.
func (m *Manager) FlagFailure(w http.ResponseWriter, r *http.Request, flow Flow) error {
	sess, err := m.Ensure(w, r)
	if err != nil {
		return err
	}
	return m.store.SetFlash(r.Context(), sess.ID, flow)
}

// ConsumeFailure reads and clears the flow's flash flag, reporting whether a
// failure message should be rendered on this request.
func (m *Manager) ConsumeFailure(r *http.Request, flow Flow) (bool, error) {
	sess, err := m.Current(r)
	if err != nil || sess == nil {
		return false, err
	}
	flash, err := m.store.ConsumeFlash(r.Context(), sess.ID, flow)
	if err != nil {
		return false, err
	}
	return flash == FlashFailed, nil
}

func (m *Manager) setCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
