package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmuriuki/taskforge-api/internal/api/shared"
	"github.com/dmuriuki/taskforge-api/internal/redact"
	"github.com/dmuriuki/taskforge-api/internal/service/auth"
)

// BasicAuthMiddleware guards the mutating routes with HTTP basic
// authentication. Reads stay public; the router applies this middleware to
// the write group only.
type BasicAuthMiddleware struct {
	verifier auth.CredentialVerifier
	realm    string
}

// NewBasicAuthMiddleware creates a new BasicAuthMiddleware with the given
// credential verifier.
func NewBasicAuthMiddleware(verifier auth.CredentialVerifier) *BasicAuthMiddleware {
	return &BasicAuthMiddleware{
		verifier: verifier,
		realm:    "taskforge",
	}
}

// Authenticate verifies the Basic credentials from the Authorization header
// and adds the user ID to the request context for authorized requests.
func (m *BasicAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok {
			m.challenge(w, r, "Authorization header required")
			return
		}

		user, err := m.verifier.VerifyCredentials(r.Context(), email, password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				m.challenge(w, r, "Invalid credentials")
				return
			}
			slog.Error("failed to verify credentials", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := shared.SetUserID(r.Context(), user.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// challenge rejects the request with a 401 and the WWW-Authenticate header
// required for the Basic scheme.
func (m *BasicAuthMiddleware) challenge(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+m.realm+`", charset="UTF-8"`)
	shared.RespondWithError(w, r, http.StatusUnauthorized, message)
}
