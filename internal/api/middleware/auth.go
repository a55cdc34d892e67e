package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/taletique/tailor-portal/internal/auth"
	"github.com/taletique/tailor-portal/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// Auth is the gate in front of every protected route. It resolves the
// session cookie to a caller principal, transparently refreshing an expired
// provider token, and responds 401 without invoking the handler otherwise.
func Auth(sessions *auth.Sessions, provider auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, err := sessions.Load(r.Context(), r)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					log.Printf("ERROR [middleware.Auth] failed to load session: %v", err)
				}
				unauthorized(w)
				return
			}

			if rec.Data.UserID == "" {
				// Pending login session; the handshake never finished.
				unauthorized(w)
				return
			}

			if !rec.Data.TokenExpiry.IsZero() && time.Now().After(rec.Data.TokenExpiry) {
				if rec.Data.RefreshToken == "" {
					unauthorized(w)
					return
				}
				token, err := provider.Refresh(r.Context(), rec.Data.RefreshToken)
				if err != nil {
					log.Printf("ERROR [middleware.Auth] token refresh failed: %v", err)
					unauthorized(w)
					return
				}
				rec.Data.AccessToken = token.AccessToken
				rec.Data.RefreshToken = token.RefreshToken
				rec.Data.TokenExpiry = token.Expiry
				if err := sessions.Save(r.Context(), rec); err != nil {
					log.Printf("ERROR [middleware.Auth] failed to save refreshed session: %v", err)
					unauthorized(w)
					return
				}
			}

			principal := &auth.Principal{
				UserID: rec.Data.UserID,
				Claims: rec.Data.Claims,
			}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal extracts the authenticated caller attached by Auth.
func GetPrincipal(ctx context.Context) (*auth.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*auth.Principal)
	return principal, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
}
