package auth

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestGenerateEmulatorToken(t *testing.T) {
	token := GenerateEmulatorToken("", "admin-uid")

	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[2] != "" {
		t.Fatalf("expected unsigned three-part JWT, got %q", token)
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("payload is not base64url: %v", err)
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if claims["sub"] != "admin-uid" || claims["user_id"] != "admin-uid" {
		t.Errorf("unexpected subject claims: %v", claims)
	}
	if claims["aud"] != DefaultProjectID {
		t.Errorf("aud = %v, want %s", claims["aud"], DefaultProjectID)
	}
}

func TestUserIDContext(t *testing.T) {
	if got := UserIDFromContext(context.Background()); got != "" {
		t.Errorf("guest context should have no user, got %q", got)
	}
	ctx := ContextWithUserID(context.Background(), "u1")
	if got := UserIDFromContext(ctx); got != "u1" {
		t.Errorf("UserIDFromContext = %q, want u1", got)
	}
}
