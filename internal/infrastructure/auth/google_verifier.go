package auth

import (
	"context"
	"fmt"

	oidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/Thebob0072/skillmatch-auth/domain"
)

// GoogleVerifier implements domain.IdentityVerifier: it exchanges an OAuth
// authorization code with Google and verifies the returned ID token.
type GoogleVerifier struct {
	oauth2Config *oauth2.Config
	verifier     *oidc.IDTokenVerifier
}

// NewGoogleVerifier discovers the issuer's endpoints and builds the
// exchange/verify pair.
func NewGoogleVerifier(ctx context.Context, issuerURL, clientID, clientSecret, redirectURL string) (*GoogleVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}

	return &GoogleVerifier{
		oauth2Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Exchange implements domain.IdentityVerifier.
func (g *GoogleVerifier) Exchange(ctx context.Context, code string) (*domain.IdentityClaims, error) {
	oauth2Token, err := g.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, domain.ErrOAuthDenied
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, domain.ErrOAuthDenied
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to decode ID token claims: %w", err)
	}

	return &domain.IdentityClaims{
		Subject:       idToken.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
	}, nil
}

// DisabledVerifier stands in when no OAuth credentials are configured.
type DisabledVerifier struct{}

func (DisabledVerifier) Exchange(ctx context.Context, code string) (*domain.IdentityClaims, error) {
	return nil, domain.ErrOAuthDenied
}
