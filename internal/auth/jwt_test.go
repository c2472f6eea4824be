package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"tourtrack/internal/domain"
)

const testSecret = "test-secret"

func TestJWTGate_Verify(t *testing.T) {
	t.Parallel()

	gate := NewJWTGate(testSecret, "accounts")

	guideToken, err := IssueToken(testSecret, "accounts", 9, "guide@example.com", "Tour Guide", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	identity, err := gate.Verify(guideToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.ID != 9 || identity.Role != domain.RoleGuide {
		t.Errorf("unexpected identity: %+v", identity)
	}
}

func TestJWTGate_RejectsBadTokens(t *testing.T) {
	t.Parallel()

	gate := NewJWTGate(testSecret, "accounts")

	expired, _ := IssueToken(testSecret, "accounts", 5, "", "tourist", -time.Minute)
	wrongSecret, _ := IssueToken("other-secret", "accounts", 5, "", "tourist", time.Hour)
	wrongIssuer, _ := IssueToken(testSecret, "elsewhere", 5, "", "tourist", time.Hour)
	noSubject, _ := IssueToken(testSecret, "accounts", 0, "", "tourist", time.Hour)
	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: 5}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: wrongSecret},
		{name: "wrong issuer", token: wrongIssuer},
		{name: "missing user id", token: noSubject},
		{name: "unsigned", token: noneAlg},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := gate.Verify(tc.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWTGate_AnyIssuerWhenUnset(t *testing.T) {
	t.Parallel()

	token, _ := IssueToken(testSecret, "", 5, "", "tourist", time.Hour)
	identity, err := NewJWTGate(testSecret, "").Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Role != domain.RoleTourist {
		t.Errorf("expected tourist role, got %q", identity.Role)
	}
}
