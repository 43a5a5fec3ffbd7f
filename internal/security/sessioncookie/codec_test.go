package sessioncookie

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testCodec(t *testing.T, withEnc bool) *Codec {
	t.Helper()
	opts := Options{
		Secret:     []byte("test-session-secret"),
		CookieName: "itemboard_session",
		TTL:        time.Hour,
	}
	if withEnc {
		raw := make([]byte, 32)
		for i := range raw {
			raw[i] = byte(i + 1)
		}
		opts.EncKey = raw
	}
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	return c
}

func TestCreateRead_RoundTrip(t *testing.T) {
	for _, enc := range []bool{false, true} {
		c := testCodec(t, enc)

		ck, err := c.Create("user-123")
		if err != nil {
			t.Fatalf("Create err: %v", err)
		}
		if !ck.HttpOnly || ck.Path != "/" || ck.SameSite != http.SameSiteLaxMode {
			t.Fatalf("unexpected cookie attributes: %+v", ck)
		}
		if ck.MaxAge != int(time.Hour.Seconds()) {
			t.Fatalf("MaxAge = %d", ck.MaxAge)
		}

		r := httptest.NewRequest(http.MethodGet, "/profile", nil)
		r.AddCookie(ck)
		uid, ok := c.Read(r)
		if !ok || uid != "user-123" {
			t.Fatalf("Read(enc=%v) = (%q, %v)", enc, uid, ok)
		}
	}
}

func TestRead_MissingCookie(t *testing.T) {
	c := testCodec(t, false)
	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	if uid, ok := c.Read(r); ok || uid != "" {
		t.Fatalf("expected absent, got (%q, %v)", uid, ok)
	}
}

func TestReadValue_TamperResistance(t *testing.T) {
	for _, enc := range []bool{false, true} {
		c := testCodec(t, enc)
		ck, err := c.Create("user-123")
		if err != nil {
			t.Fatal(err)
		}

		// truncado
		if _, ok := c.ReadValue(ck.Value[:len(ck.Value)/2]); ok {
			t.Fatalf("truncated value accepted (enc=%v)", enc)
		}

		// flip de un byte en el medio
		b := []byte(ck.Value)
		b[len(b)/2] ^= 0x01
		if uid, ok := c.ReadValue(string(b)); ok {
			t.Fatalf("tampered value accepted as %q (enc=%v)", uid, enc)
		}

		// basura
		if _, ok := c.ReadValue("garbage"); ok {
			t.Fatalf("garbage accepted (enc=%v)", enc)
		}
	}
}

func TestReadValue_WrongSecret(t *testing.T) {
	c1 := testCodec(t, false)
	ck, err := c1.Create("user-123")
	if err != nil {
		t.Fatal(err)
	}

	c2, err := New(Options{Secret: []byte("another-secret"), CookieName: "itemboard_session"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c2.ReadValue(ck.Value); ok {
		t.Fatalf("cookie signed with a different secret accepted")
	}
}

func TestReadValue_Expired(t *testing.T) {
	short, err := New(Options{
		Secret:     []byte("test-session-secret"),
		CookieName: "itemboard_session",
		TTL:        time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	ck2, err := short.Create("user-123")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok := short.ReadValue(ck2.Value); ok {
		t.Fatalf("expired cookie accepted")
	}
}

func TestDeletion(t *testing.T) {
	c := testCodec(t, false)
	ck := c.Deletion()
	if ck.MaxAge != -1 || ck.Value != "" {
		t.Fatalf("deletion cookie must expire immediately: %+v", ck)
	}
	if !ck.Expires.Before(time.Now()) {
		t.Fatalf("deletion cookie Expires must be in the past")
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error without secret")
	}
	if _, err := New(Options{Secret: []byte("s"), EncKey: []byte("short")}); err == nil {
		t.Fatalf("expected error for bad enc key length")
	}
}

func TestEncryptedValue_Format(t *testing.T) {
	c := testCodec(t, true)
	ck, err := c.Create("user-123")
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(ck.Value, "|")
	if len(parts) != 2 {
		t.Fatalf("expected nonce|ciphertext, got %q", ck.Value)
	}
	if _, err := base64.StdEncoding.DecodeString(parts[0]); err != nil {
		t.Fatalf("nonce not base64: %v", err)
	}
}
