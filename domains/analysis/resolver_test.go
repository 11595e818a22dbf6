package analysis

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLocalPath(t *testing.T) {
	existing := t.TempDir()

	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"https URL", "https://github.com/acme/widgets", false},
		{"http URL", "http://github.com/acme/widgets", false},
		{"ssh URL", "git@github.com:acme/widgets.git", false},
		{"existing directory", existing, true},
		{"missing path", filepath.Join(existing, "nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLocalPath(tt.target))
		})
	}
}

func TestRepoNameFromTarget(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"https://github.com/acme/widgets", "widgets"},
		{"https://github.com/acme/widgets.git", "widgets"},
		{"git@github.com:acme/widgets.git", "widgets"},
		{"/home/dev/projects/widgets", "widgets"},
		{"/home/dev/projects/widgets/", "widgets"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RepoNameFromTarget(tt.target), "target %s", tt.target)
	}
}
