package gitrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// CloneResult describes one attempted clone of a remote repository.
type CloneResult struct {
	Name      string
	LocalPath string
	Success   bool
	Err       error
}

// Clone clones a git repository to the specified destination
func Clone(ctx context.Context, l *zap.Logger, provider Provider, repoURL string, destPath string) (*git.Repository, error) {
	// Normalize URL using the provider
	url := provider.NormalizeURL(repoURL)

	l.Info("cloning repository",
		zap.String("provider", provider.Name()),
		zap.String("url", url),
		zap.String("dest", destPath),
	)

	// Prepare clone options
	opts := &git.CloneOptions{
		URL:      url,
		Progress: nil,
		Depth:    1, // Shallow clone for efficiency
	}

	// Add authentication if provider has it configured
	if auth := provider.Auth(); auth != nil {
		opts.Auth = auth
	}

	// Clone the repository
	repo, err := git.PlainCloneContext(ctx, destPath, false, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to clone repository: %w", err)
	}

	l.Info("repository cloned successfully")
	return repo, nil
}

// CloneOne clones a single repository URL into cloneDir, auto-detecting the
// provider. It returns the local path of the clone.
func CloneOne(ctx context.Context, l *zap.Logger, repoURL, cloneDir, token string) (string, error) {
	provider := GetProviderForURL(repoURL, token)
	if provider == nil {
		return "", fmt.Errorf("unsupported git provider for URL: %s", repoURL)
	}

	owner, name := provider.ParseURL(repoURL)
	destPath := ClonePath(cloneDir, owner, name)

	if _, err := Clone(ctx, l, provider, repoURL, destPath); err != nil {
		return "", err
	}
	return destPath, nil
}

// CloneMany clones the given repositories into cloneDir/org with at most
// concurrency clones in flight. Every repository yields exactly one
// CloneResult; a failed clone is recorded, never returned as an error.
func CloneMany(ctx context.Context, l *zap.Logger, provider Provider, repos []RemoteRepo, org string, cloneDir string, concurrency int) []CloneResult {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]CloneResult, len(repos))
	sem := semaphore.NewWeighted(int64(concurrency))
	var wg sync.WaitGroup

	for i, r := range repos {
		wg.Add(1)
		go func(i int, r RemoteRepo) {
			defer wg.Done()

			destPath := ClonePath(cloneDir, org, r.Name)
			results[i] = CloneResult{Name: r.Name, LocalPath: destPath}

			if err := sem.Acquire(ctx, 1); err != nil {
				results[i].Err = err
				return
			}
			defer sem.Release(1)

			if _, err := Clone(ctx, l, provider, r.CloneURL, destPath); err != nil {
				l.Warn("clone failed",
					zap.String("repo", r.Name),
					zap.Error(err),
				)
				results[i].Err = err
				return
			}
			results[i].Success = true
		}(i, r)
	}

	wg.Wait()
	return results
}

// Cleanup removes the clone directories of the given paths.
func Cleanup(l *zap.Logger, paths []string) {
	for _, p := range paths {
		if err := os.RemoveAll(p); err != nil {
			l.Warn("failed to remove clone", zap.String("path", p), zap.Error(err))
		}
	}
}

// ClonePath returns the path a repository is cloned to.
func ClonePath(cloneDir, owner, name string) string {
	return filepath.Join(cloneDir, owner, name)
}

// ValidateRepoURL validates that the URL is supported by a registered provider
func ValidateRepoURL(url string) error {
	provider := DefaultRegistry.Detect(url)
	if provider == nil {
		return fmt.Errorf("unsupported git provider for URL: %s", url)
	}
	return provider.ValidateURL(url)
}
