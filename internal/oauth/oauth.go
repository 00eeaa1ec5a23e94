package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sort"

	"github.com/tripshare/tripshare/internal/config"
)

var ErrUnknownProvider = errors.New("unknown oauth provider")

type UserInfo struct {
	Email    string
	Name     string
	ID       string
	Provider string
}

type Provider interface {
	Name() string
	GetConsentURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*UserInfo, error)
}

// Registry holds the providers that have credentials configured.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// FromConfig registers GitHub and Google when their client credentials are set.
func FromConfig(cfg config.OAuthProviders) *Registry {
	var providers []Provider
	if cfg.GitHub.Enabled() {
		providers = append(providers, NewGitHubProvider(cfg.GitHub))
	}
	if cfg.Google.Enabled() {
		providers = append(providers, NewGoogleProvider(cfg.Google))
	}
	return NewRegistry(providers...)
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

// Names lists the registered providers alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateState returns a random value for the OAuth state parameter.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
