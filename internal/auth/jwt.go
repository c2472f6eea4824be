// Package auth verifies caller identity from bearer tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"tourtrack/internal/domain"
)

// ErrInvalidToken is returned when a token is malformed, expired or not signed
// with the shared secret.
var ErrInvalidToken = errors.New("invalid token")

// IdentityGate turns a bearer token into a verified identity.
type IdentityGate interface {
	Verify(token string) (*domain.Identity, error)
}

// Claims is the token payload issued by the account service.
type Claims struct {
	ID       int64  `json:"id"`
	Email    string `json:"email,omitempty"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

// JWTGate verifies HS256 tokens signed with a shared secret.
type JWTGate struct {
	secret []byte
	issuer string
}

// NewJWTGate creates a gate. An empty issuer accepts tokens from any issuer.
func NewJWTGate(secret, issuer string) *JWTGate {
	return &JWTGate{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Verify checks the signature and expiry and returns the caller identity.
func (g *JWTGate) Verify(tokenString string) (*domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID <= 0 {
		return nil, ErrInvalidToken
	}

	if g.issuer != "" && !claims.VerifyIssuer(g.issuer, true) {
		return nil, ErrInvalidToken
	}

	return &domain.Identity{
		ID:   claims.ID,
		Role: domain.ParseRole(claims.UserType),
	}, nil
}

// IssueToken signs a token for a user. Used by local tooling and tests.
func IssueToken(secret, issuer string, userID int64, email, userType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:       userID,
		Email:    email,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

var _ IdentityGate = (*JWTGate)(nil)
