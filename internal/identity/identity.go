package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Provider supplies the stable user identifier that scopes all persistence
// calls, and whether anyone is signed in at all.
type Provider interface {
	CurrentUser() (string, bool)
}

// Static is a fixed, always-signed-in identity, used by the CLI where the
// user comes from configuration.
type Static string

// CurrentUser returns the configured user ID; an empty ID reads as
// signed-out.
func (s Static) CurrentUser() (string, bool) {
	return string(s), s != ""
}

// TokenIssuer signs and verifies the bearer tokens the HTTP surface uses to
// carry a user identity across requests.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer for HS256 tokens with the given lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token whose subject is the user ID.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("empty user ID")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.ttl)),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the user ID it carries.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}
