package analysis

import (
	"context"
	"fmt"

	"github.com/graphshift/graphshift/libs/gitrepo"
	"go.uber.org/zap"
)

// SCM lists an organization's repositories on a hosting provider.
type SCM interface {
	ListOrgRepos(ctx context.Context, org, provider string, limit int) ([]gitrepo.RemoteRepo, error)
}

// Cloner materializes remote repositories locally and removes them again.
type Cloner interface {
	CloneOne(ctx context.Context, repoURL string) (string, error)
	CloneMany(ctx context.Context, provider string, repos []gitrepo.RemoteRepo, org string, concurrency int) []gitrepo.CloneResult
	Cleanup(paths []string)
}

// gitSCM is the default SCM backed by the gitrepo provider registry.
type gitSCM struct {
	token string
}

// NewSCM returns the default SCM collaborator.
func NewSCM(token string) SCM {
	return &gitSCM{token: token}
}

func (s *gitSCM) ListOrgRepos(ctx context.Context, org, provider string, limit int) ([]gitrepo.RemoteRepo, error) {
	p := gitrepo.GetProviderWithToken(provider, s.token)
	if p == nil {
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
	return p.ListOrgRepos(ctx, org, limit)
}

// gitCloner is the default Cloner backed by go-git.
type gitCloner struct {
	l        *zap.Logger
	cloneDir string
	token    string
}

// NewCloner returns the default clone collaborator, cloning into cloneDir.
func NewCloner(l *zap.Logger, cloneDir, token string) Cloner {
	return &gitCloner{l: l, cloneDir: cloneDir, token: token}
}

func (c *gitCloner) CloneOne(ctx context.Context, repoURL string) (string, error) {
	return gitrepo.CloneOne(ctx, c.l, repoURL, c.cloneDir, c.token)
}

func (c *gitCloner) CloneMany(ctx context.Context, provider string, repos []gitrepo.RemoteRepo, org string, concurrency int) []gitrepo.CloneResult {
	p := gitrepo.GetProviderWithToken(provider, c.token)
	if p == nil {
		p = gitrepo.NewGitHubProvider(c.token)
	}
	return gitrepo.CloneMany(ctx, c.l, p, repos, org, c.cloneDir, concurrency)
}

func (c *gitCloner) Cleanup(paths []string) {
	gitrepo.Cleanup(c.l, paths)
}
