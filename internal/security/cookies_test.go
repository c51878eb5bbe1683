package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIsSecureRequest(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	if IsSecureRequest(plain) {
		t.Error("plain http reported secure")
	}

	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	if !IsSecureRequest(proxied) {
		t.Error("X-Forwarded-Proto https not detected")
	}

	direct := httptest.NewRequest(http.MethodGet, "/", nil)
	direct.TLS = &tls.ConnectionState{}
	if !IsSecureRequest(direct) {
		t.Error("TLS request not detected")
	}
}

func TestNewCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	exp := time.Now().Add(time.Hour)
	c := NewCookie(r, "player_uuid", "abc", exp)
	if !c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.Secure || c.Path != "/" {
		t.Errorf("unexpected cookie flags: %+v", c)
	}
	if !c.Expires.Equal(exp) {
		t.Errorf("Expires = %v, want %v", c.Expires, exp)
	}
}
