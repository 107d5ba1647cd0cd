package auth

import (
	"crypto/subtle"
	"log/slog"
)

type authenticator struct {
	tokens []string
}

// NewAuthenticator checks bearer tokens against a static allow list. An empty
// list disables the check, which is the single-user local setup.
func NewAuthenticator(tokens []string) *authenticator {
	slog.Info("api token auth", "enabled", len(tokens) > 0, "tokens", len(tokens))

	return &authenticator{tokens: tokens}
}

func (a *authenticator) Enabled() bool {
	return len(a.tokens) > 0
}

func (a *authenticator) IsAuthorized(token string) bool {
	if !a.Enabled() {
		return true
	}
	for _, t := range a.tokens {
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			return true
		}
	}
	return false
}
