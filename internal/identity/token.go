package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is the subset of access-token claims the CLI surfaces.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// InspectToken reads the claims of a JWT access token without
// verifying its signature. The provider verifies tokens; the client
// only inspects them to warn before expiry.
func InspectToken(token string) (*TokenInfo, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	info := &TokenInfo{}

	if subject, err := parsed.Claims.GetSubject(); err == nil {
		info.Subject = subject
	}

	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return info, nil
	}
	info.ExpiresAt = expiry.Time

	return info, nil
}

// Expired reports whether the token expiry has passed. Tokens
// without an expiry claim never report expired.
func (t *TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
