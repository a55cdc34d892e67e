package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/taletique/tailor-portal/internal/config"
	"golang.org/x/oauth2"
)

// Token holds the provider credentials kept inside the server-side session.
type Token struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Identity is a verified profile returned by the identity provider.
type Identity struct {
	Subject         string
	Email           *string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Claims          map[string]any
	Token           Token
}

// Provider abstracts the hosted identity provider so it can be swapped
// (and stubbed in tests).
type Provider interface {
	// AuthCodeURL builds the provider's authorization redirect for a login.
	AuthCodeURL(state string) string
	// Exchange trades the callback code for a verified identity.
	Exchange(ctx context.Context, code string) (*Identity, error)
	// Refresh trades a refresh token for fresh credentials.
	Refresh(ctx context.Context, refreshToken string) (*Token, error)
	// EndSessionURL is where the browser goes after logout.
	EndSessionURL(postLogoutRedirect string) string
}

// OIDCProvider implements Provider against any OIDC-compatible issuer using
// discovery, the code flow, and local ID-token verification.
type OIDCProvider struct {
	oauth              oauth2.Config
	verifier           *oidc.IDTokenVerifier
	endSessionEndpoint string
	clientID           string
}

func NewOIDCProvider(ctx context.Context, cfg *config.Config) (*OIDCProvider, error) {
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	var discovered struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}
	// Not every issuer advertises end_session_endpoint; logout then falls
	// back to a plain redirect.
	_ = provider.Claims(&discovered)

	return &OIDCProvider{
		oauth: oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.CallbackURL(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email", "offline_access"},
		},
		verifier:           provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID}),
		endSessionEndpoint: discovered.EndSessionEndpoint,
		clientID:           cfg.OIDCClientID,
	}, nil
}

func (p *OIDCProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *OIDCProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("token response missing id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("id token verification: %w", err)
	}

	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("id token claims: %w", err)
	}

	ident := &Identity{
		Subject:         idToken.Subject,
		FirstName:       stringClaim(claims, "given_name"),
		LastName:        stringClaim(claims, "family_name"),
		ProfileImageURL: stringClaim(claims, "picture"),
		Claims:          claims,
		Token: Token{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			Expiry:       token.Expiry,
		},
	}
	if email := stringClaim(claims, "email"); email != "" {
		ident.Email = &email
	}
	return ident, nil
}

func (p *OIDCProvider) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	source := p.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh: %w", err)
	}

	refreshed := &Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = refreshToken
	}
	return refreshed, nil
}

func (p *OIDCProvider) EndSessionURL(postLogoutRedirect string) string {
	if p.endSessionEndpoint == "" {
		return postLogoutRedirect
	}
	query := url.Values{
		"client_id":                {p.clientID},
		"post_logout_redirect_uri": {postLogoutRedirect},
	}
	return p.endSessionEndpoint + "?" + query.Encode()
}

func stringClaim(claims map[string]any, name string) string {
	if v, ok := claims[name].(string); ok {
		return v
	}
	return ""
}
