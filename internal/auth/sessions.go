package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/repository"
	"gorm.io/gorm"
)

// CookieName is the session cookie written on login.
const CookieName = "taletique_session"

// SessionData is the sess payload of a session row.
type SessionData struct {
	UserID       string         `json:"userId,omitempty"`
	Claims       map[string]any `json:"claims,omitempty"`
	AccessToken  string         `json:"accessToken,omitempty"`
	RefreshToken string         `json:"refreshToken,omitempty"`
	TokenExpiry  time.Time      `json:"tokenExpiry,omitzero"`
	// LoginState carries the OAuth state between /api/login and /api/callback.
	LoginState string `json:"loginState,omitempty"`
}

// Record is a loaded session.
type Record struct {
	SID    string
	Data   SessionData
	Expire time.Time
}

// Principal is the authenticated caller attached to a request by the Gate.
type Principal struct {
	UserID string
	Claims map[string]any
}

// Sessions persists sessions server-side and hands the browser a signed
// cookie token carrying only the opaque sid.
type Sessions struct {
	repo   repository.SessionRepository
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewSessions(repo repository.SessionRepository, secret string, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
	}
}

// Issue creates a session row and sets the cookie. It returns the new record
// so the caller can populate and Save it.
func (s *Sessions) Issue(ctx context.Context, w http.ResponseWriter, data SessionData) (*Record, error) {
	rec := &Record{
		SID:    uuid.NewString(),
		Data:   data,
		Expire: time.Now().Add(s.ttl),
	}
	if err := s.Save(ctx, rec); err != nil {
		return nil, err
	}

	token, err := s.signCookie(rec)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  rec.Expire,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return rec, nil
}

// Load resolves the request's session. Expired rows are deleted on sight.
func (s *Sessions) Load(ctx context.Context, r *http.Request) (*Record, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	sid, err := s.verifyCookie(cookie.Value)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	row, err := s.repo.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	if time.Now().After(row.Expire) {
		if err := s.repo.Delete(ctx, sid); err != nil {
			log.Printf("ERROR [auth.Load] failed to delete expired session: %v", err)
		}
		return nil, domain.ErrSessionNotFound
	}

	rec := &Record{SID: row.SID, Expire: row.Expire}
	if err := json.Unmarshal(row.Sess, &rec.Data); err != nil {
		return nil, fmt.Errorf("corrupt session payload: %w", err)
	}
	return rec, nil
}

// Save writes the record's payload back to the store.
func (s *Sessions) Save(ctx context.Context, rec *Record) error {
	payload, err := json.Marshal(rec.Data)
	if err != nil {
		return err
	}
	return s.repo.Put(ctx, &domain.Session{
		SID:    rec.SID,
		Sess:   payload,
		Expire: rec.Expire,
	})
}

// Destroy deletes the session row and clears the cookie.
func (s *Sessions) Destroy(ctx context.Context, w http.ResponseWriter, sid string) error {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s.repo.Delete(ctx, sid)
}

// Prune deletes expired session rows.
func (s *Sessions) Prune(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, time.Now())
}

// PruneLoop prunes on a ticker until the context is done.
func (s *Sessions) PruneLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.Prune(ctx); err != nil {
				log.Printf("ERROR [auth.PruneLoop] failed to prune sessions: %v", err)
			} else if n > 0 {
				log.Printf("pruned %d expired sessions", n)
			}
		}
	}
}

// CookieToken signs a cookie value for a record. Exposed so the test
// harness can authenticate without driving the provider flow.
func (s *Sessions) CookieToken(rec *Record) (string, error) {
	return s.signCookie(rec)
}

func (s *Sessions) signCookie(rec *Record) (string, error) {
	claims := jwt.MapClaims{
		"sid": rec.SID,
		"exp": rec.Expire.Unix(),
		"iat": time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Sessions) verifyCookie(value string) (string, error) {
	token, err := jwt.Parse(value, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrSessionNotFound
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}
