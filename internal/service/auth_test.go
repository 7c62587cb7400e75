package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lumenfide/lumen/internal/domain"
)

func TestVerifyJWT(t *testing.T) {
	const secret = "test-secret-with-enough-length-000"
	auth := NewAuthService(secret, time.Hour)

	valid, err := auth.GenerateJWT("alice")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	sign := func(method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{"issued token", valid, "alice", false},
		{"id claim", sign(jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"id": "bob", "exp": future}), "bob", false},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"user_id": "alice", "exp": future}), "", true},
		{"expired", sign(jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"user_id": "alice", "exp": time.Now().Add(-time.Minute).Unix()}), "", true},
		{"no user", sign(jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"exp": future}), "", true},
		{"none algorithm", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"user_id": "alice"}), "", true},
		{"garbage", "not.a.token", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.VerifyJWT(tt.token)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnauthorized) {
					t.Errorf("VerifyJWT() error = %v, want ErrUnauthorized", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifyJWT() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("VerifyJWT() = %q, want %q", got, tt.want)
			}
		})
	}
}
