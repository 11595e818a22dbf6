package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/graphshift/graphshift/domains/analysis"
	"github.com/graphshift/graphshift/libs/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSingleRepo(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	agg := analysis.AggregateSingle(analysis.Outcome{
		Repository:  "widgets",
		Findings:    []engine.Finding{engine.Finding(`{"kind":"deprecated"}`)},
		TotalIssues: 1,
	}, "")

	saved, err := w.Save(agg)
	require.NoError(t, err)
	require.Len(t, saved, 1)

	data, err := os.ReadFile(saved[0])
	require.NoError(t, err)

	var decoded analysis.Aggregate
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, analysis.KindSingleRepo, decoded.Kind)
	assert.Equal(t, 1, decoded.TotalIssues)
}

func TestSaveOrganizationWritesPerRepoFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	agg := analysis.AggregateOrganization("acme", []analysis.Outcome{
		{Repository: "one", TotalIssues: 2},
		{Repository: "two", TotalIssues: 3},
	}, nil)

	saved, err := w.Save(agg)
	require.NoError(t, err)
	require.Len(t, saved, 3, "one aggregate file plus one file per repository")

	names := make([]string, len(saved))
	for i, p := range saved {
		names[i] = filepath.Base(p)
	}
	assert.Contains(t, names[1], "one_")
	assert.Contains(t, names[2], "two_")
}

func TestSaveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	w := NewWriter(dir)

	agg := analysis.AggregateSingle(analysis.Outcome{Repository: "r"}, "")
	_, err := w.Save(agg)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
