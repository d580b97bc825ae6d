package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"
)

var ErrInvalidAssertion = errors.New("identity assertion is invalid")

// Identity holds the verified claims extracted from a federated sign-in
// assertion.
type Identity struct {
	Email      string
	Fullname   string
	ProfileImg string
}

type IdentityVerifier interface {
	Verify(ctx context.Context, assertion string) (*Identity, error)
}

// GoogleVerifier validates Google-issued ID tokens against the configured
// OAuth client id using Google's published signing keys.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (g *GoogleVerifier) Verify(ctx context.Context, assertion string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, assertion, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssertion, err)
	}

	identity := &Identity{
		Email:      claimString(payload.Claims, "email"),
		Fullname:   claimString(payload.Claims, "name"),
		ProfileImg: upscaleAvatar(claimString(payload.Claims, "picture")),
	}

	if identity.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidAssertion)
	}

	return identity, nil
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}

// Google avatar URLs embed a size token; swap the default 96px variant for a
// higher-resolution one.
func upscaleAvatar(url string) string {
	return strings.Replace(url, "s96-c", "s384-c", 1)
}
