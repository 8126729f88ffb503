package grant

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
)

func signGrant(t *testing.T, privateKey ed25519.PrivateKey, header, payload map[string]any) string {
	t.Helper()

	headerJSON, err := json.Marshal(header)
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	encodedHeader := base64.RawURLEncoding.EncodeToString(headerJSON)
	encodedPayload := base64.RawURLEncoding.EncodeToString(payloadJSON)
	signingInput := encodedHeader + "." + encodedPayload
	signature := ed25519.Sign(privateKey, []byte(signingInput))
	encodedSig := base64.RawURLEncoding.EncodeToString(signature)
	return signingInput + "." + encodedSig
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv(EnvGrantIssuer, "")
	t.Setenv(EnvGrantAudience, "")
	t.Setenv(EnvGrantPublicKey, "")

	if _, err := LoadConfigFromEnv(nil); err == nil {
		t.Fatal("expected error when env vars are missing")
	}

	pubKey, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	t.Setenv(EnvGrantIssuer, "issuer")
	t.Setenv(EnvGrantAudience, "tempo")
	t.Setenv(EnvGrantPublicKey, base64.RawStdEncoding.EncodeToString(pubKey))

	cfg, err := LoadConfigFromEnv(nil)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Issuer != "issuer" || cfg.Audience != "tempo" {
		t.Fatal("expected issuer and audience to be loaded")
	}
	if len(cfg.Key) != ed25519.PublicKeySize {
		t.Fatalf("expected public key size %d", ed25519.PublicKeySize)
	}
}

func TestValidateSuccess(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	token := signGrant(t, priv, map[string]any{
		"alg": "EdDSA",
		"typ": "JWT",
	}, map[string]any{
		"iss": "issuer",
		"aud": []string{"tempo", "secondary"},
		"sub": "owner-1",
		"exp": now.Add(2 * time.Hour).Unix(),
		"iat": now.Add(-time.Minute).Unix(),
		"jti": "jti-1",
	})

	cfg := Config{Issuer: "issuer", Audience: "tempo", Key: pub, Now: func() time.Time { return now }}
	claims, err := Validate(token, cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.OwnerID() != "owner-1" {
		t.Fatalf("owner = %q, want owner-1", claims.OwnerID())
	}
	if !claims.ExpiresAt.Equal(time.Unix(now.Add(2*time.Hour).Unix(), 0).UTC()) {
		t.Fatal("expected expires at to match exp")
	}
}

func TestValidateRejections(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	_, otherPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	cfg := Config{Issuer: "issuer", Audience: "tempo", Key: pub, Now: func() time.Time { return now }}
	base := map[string]any{
		"iss": "issuer",
		"aud": "tempo",
		"sub": "owner-1",
		"exp": now.Add(time.Hour).Unix(),
		"jti": "jti-1",
	}

	tests := []struct {
		name string
		key  ed25519.PrivateKey
		mod  func(payload map[string]any)
	}{
		{"wrong signer", otherPriv, func(map[string]any) {}},
		{"wrong issuer", priv, func(p map[string]any) { p["iss"] = "impostor" }},
		{"wrong audience", priv, func(p map[string]any) { p["aud"] = "other" }},
		{"missing subject", priv, func(p map[string]any) { delete(p, "sub") }},
		{"expired", priv, func(p map[string]any) { p["exp"] = now.Add(-time.Minute).Unix() }},
		{"not yet valid", priv, func(p map[string]any) { p["nbf"] = now.Add(time.Minute).Unix() }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload := make(map[string]any, len(base))
			for k, v := range base {
				payload[k] = v
			}
			tc.mod(payload)

			token := signGrant(t, tc.key, map[string]any{"alg": "EdDSA"}, payload)
			_, err := Validate(token, cfg)
			if !apperrors.IsCode(err, apperrors.CodeGrantInvalid) {
				t.Fatalf("expected grant invalid, got %v", err)
			}
		})
	}
}

func TestValidateEmptyToken(t *testing.T) {
	_, err := Validate("  ", Config{})
	if !apperrors.IsCode(err, apperrors.CodeGrantInvalid) {
		t.Fatalf("expected grant invalid, got %v", err)
	}
}

func TestOwnerContextRoundTrip(t *testing.T) {
	ctx := WithOwner(context.Background(), "owner-1")
	if got := OwnerFromContext(ctx); got != "owner-1" {
		t.Fatalf("owner = %q", got)
	}
	if got := OwnerFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty owner, got %q", got)
	}
}
