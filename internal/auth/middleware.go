package auth

import (
	"context"
	"net/http"
)

// SessionCookie is the name of the HttpOnly cookie holding the session token.
const SessionCookie = "session"

// contextKey is an unexported type for context keys in this package.
// A package-private key type means only this package can read or write the
// username in a request context — no collision with other packages' keys.
type contextKey string

const usernameKey contextKey = "username"

// RequireUser enforces a valid session on protected routes.
//
// It reads the session cookie, validates the token, and stores the
// username in the request context. Missing or invalid token → 401 and the
// chain stops. There is no "optional" variant: every route in this app is
// either public (catalog, leaderboard) or requires a user.
func RequireUser(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				unauthorized(w)
				return
			}

			username, err := tokens.Validate(cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext retrieves the logged-in username set by RequireUser.
// Returns ("", false) for an anonymous request.
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey).(string)
	return name, ok && name != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"login required"}`))
}
