package analysis

import "errors"

var (
	// ErrNoRepositories means discovery yielded zero qualifying repositories.
	// This is fatal for the whole run, unlike per-item analysis failures.
	ErrNoRepositories = errors.New("no qualifying repositories found")

	// ErrInvalidRequest means the request named neither or both of a single
	// repository and an organization.
	ErrInvalidRequest = errors.New("must provide either a repository path or an organization name")
)
