package analysis

import (
	"os"
	"path/filepath"
	"strings"
)

// remotePrefixes are the URL/SCM shapes that mark a target as remote.
var remotePrefixes = []string{"http://", "https://", "git@"}

// IsLocalPath classifies a target string. A target with a known remote prefix
// is remote; otherwise it is local iff it resolves to an existing filesystem
// path. Resolution failures classify as "not local" — classification never
// fails the run.
func IsLocalPath(target string) bool {
	for _, p := range remotePrefixes {
		if strings.HasPrefix(target, p) {
			return false
		}
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

// RepoNameFromTarget extracts a repository name from a local path or URL.
func RepoNameFromTarget(target string) string {
	for _, p := range remotePrefixes {
		if strings.HasPrefix(target, p) {
			name := target[strings.LastIndex(target, "/")+1:]
			return strings.TrimSuffix(name, ".git")
		}
	}
	return filepath.Base(filepath.Clean(target))
}
