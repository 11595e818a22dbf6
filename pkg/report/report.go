package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/graphshift/graphshift/domains/analysis"
)

// Writer saves analysis aggregates as JSON report files.
type Writer struct {
	dir string
}

// NewWriter creates a report writer targeting dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Save writes the aggregate to disk and returns the paths written. For an
// organization run each repository also gets its own report file.
func (w *Writer) Save(agg *analysis.Aggregate) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report dir: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")

	var saved []string

	path := filepath.Join(w.dir, fmt.Sprintf("graphshift_%s_%s.json", agg.Kind, stamp))
	if err := writeJSON(path, agg); err != nil {
		return nil, err
	}
	saved = append(saved, path)

	if agg.Kind == analysis.KindOrganization {
		for i := range agg.Outcomes {
			o := &agg.Outcomes[i]
			p := filepath.Join(w.dir, fmt.Sprintf("%s_%s.json", o.Repository, stamp))
			if err := writeJSON(p, o); err != nil {
				return nil, err
			}
			saved = append(saved, p)
		}
	}

	return saved, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
