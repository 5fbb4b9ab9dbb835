// Package auth checks request API keys against the configured set.
// An empty key set disables authentication entirely.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/config"
)

// Auth holds the accepted API keys.
type Auth struct {
	keys []string
}

// NewFromConfig builds an Auth instance from the loaded config.
func NewFromConfig(cfg *config.Config) (*Auth, error) {
	seen := make(map[string]bool)
	var keys []string
	for _, key := range cfg.Server.APIKeys {
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("empty api key in config")
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate api key in config")
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return &Auth{keys: keys}, nil
}

// Enabled reports whether any keys are configured.
func (a *Auth) Enabled() bool {
	return a != nil && len(a.keys) > 0
}

// Check reports whether the presented key is accepted. When no keys are
// configured every request passes.
func (a *Auth) Check(apiKey string) bool {
	if !a.Enabled() {
		return true
	}
	for _, k := range a.keys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(apiKey)) == 1 {
			return true
		}
	}
	return false
}
