package analysis

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// sourceExtension is the file extension that qualifies a directory as an
// analyzable repository.
const sourceExtension = ".java"

// DiscoverLocal scans the immediate children of dir for repositories. Hidden
// entries are skipped; a child qualifies if a recursive scan finds at least
// one Java source file. Enumeration stops once maxRepos items qualify and
// follows filesystem iteration order, which is not guaranteed stable.
func DiscoverLocal(dir string, maxRepos int) ([]RepoItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var items []RepoItem
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !hasSourceFiles(path) {
			continue
		}

		items = append(items, RepoItem{
			Name:      entry.Name(),
			LocalPath: path,
			Origin:    OriginLocal,
			Cloned:    true,
		})
		if len(items) >= maxRepos {
			break
		}
	}

	return items, nil
}

// errFound stops the walk early once a source file is seen.
var errFound = errors.New("found")

// hasSourceFiles reports whether dir contains at least one Java source file
// anywhere below it. Walk errors classify the directory as not qualifying.
func hasSourceFiles(dir string) bool {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), sourceExtension) {
			return errFound
		}
		return nil
	})
	return errors.Is(err, errFound)
}
