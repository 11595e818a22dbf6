package gitrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

const githubAPIBase = "https://api.github.com"

// GitHubProvider implements Provider for GitHub repositories
type GitHubProvider struct {
	pat     string // Personal Access Token
	apiBase string
	client  *http.Client
}

// NewGitHubProvider creates a new GitHub provider with optional PAT authentication
func NewGitHubProvider(pat string) *GitHubProvider {
	return &GitHubProvider{
		pat:     pat,
		apiBase: githubAPIBase,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *GitHubProvider) Name() string {
	return "github"
}

func (g *GitHubProvider) NormalizeURL(url string) string {
	// Remove trailing .git if present
	url = strings.TrimSuffix(url, ".git")

	// Handle various formats
	switch {
	case strings.HasPrefix(url, "git@github.com:"):
		// SSH format: git@github.com:owner/repo
		url = strings.Replace(url, "git@github.com:", "https://github.com/", 1)
	case strings.HasPrefix(url, "github.com/"):
		// Short format: github.com/owner/repo
		url = "https://" + url
	case !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://"):
		// Assume it's just owner/repo
		url = "https://github.com/" + url
	}

	return url + ".git"
}

func (g *GitHubProvider) ParseURL(url string) (owner, repo string) {
	// Normalize and strip common prefixes
	url = strings.TrimSuffix(url, ".git")
	url = strings.TrimPrefix(url, "https://github.com/")
	url = strings.TrimPrefix(url, "http://github.com/")
	url = strings.TrimPrefix(url, "github.com/")
	url = strings.TrimPrefix(url, "git@github.com:")

	parts := strings.Split(url, "/")
	if len(parts) >= 2 {
		return parts[0], parts[1]
	}
	return "", url
}

func (g *GitHubProvider) ValidateURL(url string) error {
	owner, name := g.ParseURL(url)
	if owner == "" || name == "" {
		return fmt.Errorf("invalid GitHub repository URL format: %s", url)
	}
	return nil
}

func (g *GitHubProvider) Auth() transport.AuthMethod {
	if g.pat == "" {
		return nil
	}
	return &githttp.BasicAuth{
		Username: "git", // GitHub uses "git" as username for token auth
		Password: g.pat,
	}
}

func (g *GitHubProvider) MatchesURL(url string) bool {
	url = strings.ToLower(url)
	return strings.Contains(url, "github.com") ||
		strings.HasPrefix(url, "git@github.com:")
}

// githubRepo is the subset of the GitHub list-repos response we consume.
type githubRepo struct {
	Name     string `json:"name"`
	CloneURL string `json:"clone_url"`
	Language string `json:"language"`
	Archived bool   `json:"archived"`
}

// ListOrgRepos lists up to limit repositories of an organization via the
// GitHub REST API. Archived repositories are skipped.
func (g *GitHubProvider) ListOrgRepos(ctx context.Context, org string, limit int) ([]RemoteRepo, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be at least 1, got %d", limit)
	}

	var repos []RemoteRepo
	perPage := 100
	if limit < perPage {
		perPage = limit
	}

	for page := 1; len(repos) < limit; page++ {
		url := fmt.Sprintf("%s/orgs/%s/repos?type=public&per_page=%d&page=%d",
			g.apiBase, org, perPage, page)

		batch, err := g.fetchRepoPage(ctx, url)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		for _, r := range batch {
			if r.Archived {
				continue
			}
			repos = append(repos, RemoteRepo{
				Name:     r.Name,
				CloneURL: r.CloneURL,
				Language: r.Language,
			})
			if len(repos) == limit {
				break
			}
		}
	}

	return repos, nil
}

func (g *GitHubProvider) fetchRepoPage(ctx context.Context, url string) ([]githubRepo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.pat != "" {
		req.Header.Set("Authorization", "Bearer "+g.pat)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization repos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("github API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var batch []githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}
	return batch, nil
}

// SetPAT updates the Personal Access Token
func (g *GitHubProvider) SetPAT(pat string) {
	g.pat = pat
}
