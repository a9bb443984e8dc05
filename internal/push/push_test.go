package push

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateVAPIDKeys(t *testing.T) {
	pub, priv, err := GenerateVAPIDKeys()
	if err != nil {
		t.Fatalf("generate VAPID keys: %v", err)
	}

	// Public key should be base64url-encoded, 65 bytes uncompressed P-256 point
	pubBytes, err := base64.RawURLEncoding.DecodeString(pub)
	if err != nil {
		t.Fatalf("decode public key: %v", err)
	}
	if len(pubBytes) != 65 {
		t.Errorf("public key length = %d, want 65", len(pubBytes))
	}

	privBytes, err := base64.RawURLEncoding.DecodeString(priv)
	if err != nil {
		t.Fatalf("decode private key: %v", err)
	}
	if len(privBytes) != 32 {
		t.Errorf("private key length = %d, want 32", len(privBytes))
	}

	pub2, _, _ := GenerateVAPIDKeys()
	if pub == pub2 {
		t.Error("expected different keys on second generation")
	}
}

// deviceToken builds a syntactically valid subscription token for endpoint.
func deviceToken(t *testing.T, endpoint string) string {
	t.Helper()
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate device key: %v", err)
	}
	auth := make([]byte, 16)
	rand.Read(auth)

	token, err := json.Marshal(map[string]any{
		"endpoint": endpoint,
		"keys": map[string]string{
			"p256dh": base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()),
			"auth":   base64.RawURLEncoding.EncodeToString(auth),
		},
	})
	if err != nil {
		t.Fatalf("marshal token: %v", err)
	}
	return string(token)
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid", deviceToken(t, "https://push.example/abc"), false},
		{"not json", "ExponentPushToken[xyz]", true},
		{"missing keys", `{"endpoint":"https://push.example/abc"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := ParseToken(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && sub.Endpoint != "https://push.example/abc" {
				t.Errorf("endpoint = %q", sub.Endpoint)
			}
		})
	}
}

func newTestService(t *testing.T, status int) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			t.Error("missing VAPID authorization header")
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	pub, priv, err := GenerateVAPIDKeys()
	if err != nil {
		t.Fatalf("generate keys: %v", err)
	}
	svc := NewService(pub, priv, "admin@superlista.app")
	svc.client = srv.Client()
	return svc, srv
}

func TestServiceSend(t *testing.T) {
	svc, srv := newTestService(t, http.StatusCreated)

	err := svc.Send(context.Background(), deviceToken(t, srv.URL+"/sub"), Payload{Title: "t", Body: "b"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
}

func TestServiceSendExpired(t *testing.T) {
	svc, srv := newTestService(t, http.StatusGone)

	err := svc.Send(context.Background(), deviceToken(t, srv.URL+"/sub"), Payload{Title: "t"})
	if !errors.Is(err, ErrExpired) {
		t.Errorf("err = %v, want ErrExpired", err)
	}
}

func TestServiceEnabled(t *testing.T) {
	if NewService("", "", "x").Enabled() {
		t.Error("service without keys should be disabled")
	}
	if !NewService("pub", "priv", "x").Enabled() {
		t.Error("service with keys should be enabled")
	}
}
