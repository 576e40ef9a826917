package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"cookbook-backend/application/ports"
	"cookbook-backend/domain/core/valueobjects"
	"cookbook-backend/pkg/auth"
)

// Authenticate resolves the session cookie to a user and stores the user on
// the request context. It never blocks the request: public pages run with no
// user, and a stale session (user deleted, store restarted) degrades to
// anonymous instead of failing.
func Authenticate(sessions *auth.Manager, users ports.UserRepository, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Current(r)
			if err != nil || !sess.Authenticated() {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := valueobjects.NewUserIDFromString(sess.UserID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				logger.Warn("Session references unknown user",
					zap.String("sessionID", sess.ID),
					zap.String("userID", sess.UserID),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// RequireUser gates authenticated routes. An unauthenticated request is
// redirected to the login page before any store operation runs.
func RequireUser() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := auth.UserFromContext(r.Context()); err != nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
