package services

import (
	"strings"
	"testing"

	"main/utils"
)

func init() {
	utils.JWTSecretKey = "test_secret_key"
	utils.JWTExpirationTime = 3600
}

func TestGenerateAndParseToken(t *testing.T) {
	token, sessionID, err := GenerateToken("user-1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" || sessionID == "" {
		t.Fatal("empty token or session id")
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("user_id = %q, want user-1", claims.UserID)
	}
	if claims.SessionID != sessionID {
		t.Errorf("session id = %q, want %q", claims.SessionID, sessionID)
	}
	if claims.ExpiresAt.IsZero() {
		t.Error("expiry claim missing")
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, _, err := GenerateToken("user-1")
	if err != nil {
		t.Fatal(err)
	}

	// Flip part of the signature
	tampered := token[:len(token)-2] + "zz"
	if tampered == token {
		tampered = token[:len(token)-2] + "aa"
	}
	if _, err := ParseToken(tampered); err == nil {
		t.Error("tampered token accepted")
	}

	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestTokensAreUniquePerIssue(t *testing.T) {
	first, _, err := GenerateToken("user-1")
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := GenerateToken("user-1")
	if err != nil {
		t.Fatal(err)
	}
	// Fresh issues carry fresh session ids
	if strings.Compare(first, second) == 0 {
		t.Error("two issued tokens are identical")
	}
}
