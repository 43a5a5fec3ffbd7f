package util

import (
	"strings"
	"testing"
)

func TestMaskSecret(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcd", "***"},
		{"super-secret-value", "su…(18)"},
	}
	for _, c := range cases {
		if got := MaskSecret(c.in); got != c.want {
			t.Errorf("MaskSecret(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if strings.Contains(MaskSecret("hunter2hunter2"), "hunter2") {
		t.Fatal("mask must not leak the secret")
	}
}
