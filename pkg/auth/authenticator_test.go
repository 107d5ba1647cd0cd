package auth

import "testing"

func TestIsAuthorized(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		token    string
		expected bool
	}{
		{"no tokens configured allows all", nil, "", true},
		{"no tokens configured allows any token", nil, "whatever", true},
		{"known token", []string{"alpha", "beta"}, "beta", true},
		{"unknown token", []string{"alpha"}, "gamma", false},
		{"empty token rejected when configured", []string{"alpha"}, "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := NewAuthenticator(test.tokens)
			if got := a.IsAuthorized(test.token); got != test.expected {
				t.Errorf("IsAuthorized(%q) = %v, want %v", test.token, got, test.expected)
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	if NewAuthenticator(nil).Enabled() {
		t.Error("expected auth disabled with no tokens")
	}
	if !NewAuthenticator([]string{"alpha"}).Enabled() {
		t.Error("expected auth enabled with tokens")
	}
}
