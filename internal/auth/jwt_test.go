package auth

import "testing"

func TestParseBearerToken(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "standard bearer", header: "Bearer abc.def.ghi", expected: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer token123", expected: "token123"},
		{name: "missing scheme", header: "token123", expected: ""},
		{name: "empty header", header: "", expected: ""},
		{name: "extra segments", header: "Bearer a b", expected: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseBearerToken(tc.header); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	if _, err := VerifyAccessToken("", "secret"); err == nil {
		t.Fatalf("empty token must be rejected")
	}
	if _, err := VerifyAccessToken("not-a-jwt", "secret"); err == nil {
		t.Fatalf("malformed token must be rejected")
	}
}
