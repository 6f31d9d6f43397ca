package transport

import (
	"context"
	"eventfinder/internal/auth"
	"eventfinder/internal/domain"
	"eventfinder/internal/logging"
	"net/http"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// TokenVerifier checks Firebase ID tokens. *auth.Client from the Firebase
// Admin SDK implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// WithAuthProtection resolves the caller from the bearer token:
// 1. Valid token -> UID in the request context, full access
// 2. No token -> guest access to reads and list views IF publicRead is true
// 3. Otherwise (or an invalid token) -> 401 Unauthorized
func WithAuthProtection(next http.Handler, verifier TokenVerifier, publicRead bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, hasToken := bearerToken(r)

		if hasToken {
			verified, err := verifier.VerifyIDToken(r.Context(), token)
			if err != nil {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("rejected ID token")
				respondError(w, r, domain.ErrUnauthorized)
				return
			}
			ctx := auth.ContextWithUserID(r.Context(), verified.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if publicRead && guestAllowed(r) {
			w.Header().Set("X-Access-Type", "Public-Preview")
			next.ServeHTTP(w, r)
			return
		}

		respondError(w, r, domain.ErrUnauthorized)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return token, token != ""
}

// guestAllowed lets guests read and browse the event list. List views are
// per-visitor state, so their POST routes count as browsing.
func guestAllowed(r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	return r.URL.Path == "/views" || strings.HasPrefix(r.URL.Path, "/views/")
}
