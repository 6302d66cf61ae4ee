// Package identity verifies Privy access tokens and yields the user they belong to.
package identity

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "privy.io"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid access token")
)

// Claims of a Privy access token. The subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid,omitempty"`
}

// Verifier checks ES256 access tokens issued for one Privy app.
type Verifier struct {
	appID string
	key   *ecdsa.PublicKey
}

// NewVerifier parses the PEM verification key shown in the Privy dashboard.
func NewVerifier(appID string, pemKey string) (*Verifier, error) {
	if appID == "" {
		return nil, errors.New("app id not set")
	}
	key, err := jwt.ParseECPublicKeyFromPEM([]byte(normalizePEM(pemKey)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse verification key: %w", err)
	}
	return &Verifier{appID: appID, key: key}, nil
}

// Verify validates tokenStr and returns the user id it was issued to.
func (v *Verifier) Verify(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.key, nil
	},
		jwt.WithAudience(v.appID),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return "", fmt.Errorf("invalid claims type")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: no subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// normalizePEM accepts keys passed through env vars with literal "\n".
func normalizePEM(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `\n`, "\n")
}
