package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taletique/tailor-portal/internal/config"
	"github.com/taletique/tailor-portal/internal/domain"
)

// UserUpserter persists the profile returned by the provider. Implemented by
// the user service; an interface here keeps this package free of the service
// layer.
type UserUpserter interface {
	UpsertFromIdentity(ctx context.Context, ident *Identity) (*domain.User, error)
}

// Handler owns the identity-provider handshake endpoints.
type Handler struct {
	provider Provider
	sessions *Sessions
	users    UserUpserter
	appURL   string
}

func NewHandler(provider Provider, sessions *Sessions, users UserUpserter, cfg *config.Config) *Handler {
	return &Handler{
		provider: provider,
		sessions: sessions,
		users:    users,
		appURL:   cfg.AppURL,
	}
}

// Register mounts the handshake endpoints under the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/login", h.Login)
	r.Get("/callback", h.Callback)
	r.Get("/logout", h.Logout)
}

// Login opens a pending session carrying the OAuth state and redirects to
// the provider's authorization endpoint.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	if _, err := h.sessions.Issue(r.Context(), w, SessionData{LoginState: state}); err != nil {
		log.Printf("ERROR [auth.Login] failed to create session: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to start login")
		return
	}

	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusFound)
}

// Callback verifies the provider response, upserts the profile, promotes the
// pending session to an authenticated one, and sends the browser home.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	rec, err := h.sessions.Load(r.Context(), r)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" || state != rec.Data.LoginState {
		writeJSONError(w, http.StatusUnauthorized, "Invalid state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSONError(w, http.StatusUnauthorized, "Missing authorization code")
		return
	}

	ident, err := h.provider.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("ERROR [auth.Callback] code exchange failed: %v", err)
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.users.UpsertFromIdentity(r.Context(), ident)
	if err != nil {
		log.Printf("ERROR [auth.Callback] failed to upsert user: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to complete login")
		return
	}

	rec.Data = SessionData{
		UserID:       user.ID,
		Claims:       ident.Claims,
		AccessToken:  ident.Token.AccessToken,
		RefreshToken: ident.Token.RefreshToken,
		TokenExpiry:  ident.Token.Expiry,
	}
	if err := h.sessions.Save(r.Context(), rec); err != nil {
		log.Printf("ERROR [auth.Callback] failed to save session: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to complete login")
		return
	}

	http.Redirect(w, r, h.appURL+"/", http.StatusFound)
}

// Logout destroys the session and redirects to the provider's end-session
// endpoint (or straight home when the provider has none).
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if rec, err := h.sessions.Load(r.Context(), r); err == nil {
		if err := h.sessions.Destroy(r.Context(), w, rec.SID); err != nil {
			log.Printf("ERROR [auth.Logout] failed to destroy session: %v", err)
		}
	}

	http.Redirect(w, r, h.provider.EndSessionURL(h.appURL+"/"), http.StatusFound)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
