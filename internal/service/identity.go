package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

// ExternalIdentity is what a verifier learned about the signing-in person
type ExternalIdentity struct {
	Subject string
	Name    string
	Picture string
}

// IdentityVerifier turns an external credential into a verified identity
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (ExternalIdentity, error)
}

// GoogleVerifier checks Google ID tokens against the issuer's published keys
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewGoogleVerifier(ctx context.Context, issuerURL, clientID string) (*GoogleVerifier, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, errors.New("client id is required")
	}

	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("discovering oidc provider: %w", err)
	}

	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (v *GoogleVerifier) Verify(ctx context.Context, rawIDToken string) (ExternalIdentity, error) {
	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	var claims struct {
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return ExternalIdentity{}, fmt.Errorf("parsing id token claims: %w", err)
	}

	return ExternalIdentity{
		Subject: idToken.Subject,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

// DemoVerifier trusts the credential as the external id. Development only.
type DemoVerifier struct{}

func (DemoVerifier) Verify(_ context.Context, credential string) (ExternalIdentity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return ExternalIdentity{}, ErrInvalidCredential
	}
	return ExternalIdentity{Subject: credential}, nil
}
