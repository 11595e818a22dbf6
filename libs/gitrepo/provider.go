package gitrepo

import (
	"context"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// RemoteRepo is one repository as reported by a hosting provider's listing API.
type RemoteRepo struct {
	Name     string
	CloneURL string
	Language string
}

// Provider defines the interface for git hosting services (GitHub, GitLab, Bitbucket, etc.)
type Provider interface {
	// Name returns the provider name (e.g., "github", "gitlab", "bitbucket")
	Name() string

	// NormalizeURL converts various URL formats to a standard clone URL
	NormalizeURL(url string) string

	// ParseURL extracts owner and repository name from a URL
	ParseURL(url string) (owner, repo string)

	// ValidateURL checks if the URL is valid for this provider
	ValidateURL(url string) error

	// Auth returns the authentication method for this provider (nil if no auth)
	Auth() transport.AuthMethod

	// MatchesURL returns true if the URL belongs to this provider
	MatchesURL(url string) bool

	// ListOrgRepos lists up to limit repositories of an organization
	ListOrgRepos(ctx context.Context, org string, limit int) ([]RemoteRepo, error)
}

// Registry holds registered providers and allows auto-detection
type Registry struct {
	providers []Provider
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make([]Provider, 0),
	}
}

// Register adds a provider to the registry
func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
}

// Detect finds the appropriate provider for a given URL
func (r *Registry) Detect(url string) Provider {
	for _, p := range r.providers {
		if p.MatchesURL(url) {
			return p
		}
	}
	return nil
}

// Get returns a provider by name
func (r *Registry) Get(name string) Provider {
	for _, p := range r.providers {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// DefaultRegistry is the global provider registry with common providers pre-registered.
// Providers are registered without authentication - use GetProviderWithToken for
// authenticated access.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(NewGitHubProvider(""))
}

// GetProviderWithToken returns a provider with the given token for authentication
func GetProviderWithToken(providerName string, token string) Provider {
	switch providerName {
	case "github":
		return NewGitHubProvider(token)
	default:
		return nil
	}
}

// GetProviderForURL returns a provider for the given URL with optional token
func GetProviderForURL(url string, token string) Provider {
	baseProvider := DefaultRegistry.Detect(url)
	if baseProvider == nil {
		return nil
	}

	if token == "" {
		return baseProvider
	}

	return GetProviderWithToken(baseProvider.Name(), token)
}

// FilterByLanguage keeps only repositories whose primary language matches lang
// (case-insensitive). Repositories with an unknown language are dropped.
func FilterByLanguage(repos []RemoteRepo, lang string) []RemoteRepo {
	var out []RemoteRepo
	for _, r := range repos {
		if strings.EqualFold(r.Language, lang) {
			out = append(out, r)
		}
	}
	return out
}
