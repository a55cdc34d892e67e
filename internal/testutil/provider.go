package testutil

import (
	"context"
	"errors"
	"time"

	"github.com/taletique/tailor-portal/internal/auth"
)

// StubProvider is an in-memory identity provider for tests. Exchange returns
// whatever Identity it is primed with, regardless of code.
type StubProvider struct {
	Identity   *auth.Identity
	RefreshErr error
}

func (p *StubProvider) AuthCodeURL(state string) string {
	return "https://idp.test/authorize?state=" + state
}

func (p *StubProvider) Exchange(ctx context.Context, code string) (*auth.Identity, error) {
	if p.Identity == nil {
		return nil, errors.New("stub provider not primed")
	}
	return p.Identity, nil
}

func (p *StubProvider) Refresh(ctx context.Context, refreshToken string) (*auth.Token, error) {
	if p.RefreshErr != nil {
		return nil, p.RefreshErr
	}
	return &auth.Token{
		AccessToken:  "refreshed-access-token",
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(time.Hour),
	}, nil
}

func (p *StubProvider) EndSessionURL(postLogoutRedirect string) string {
	return postLogoutRedirect
}
