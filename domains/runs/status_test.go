package runs

import (
	"testing"

	"github.com/graphshift/graphshift/domains/analysis"
	"github.com/stretchr/testify/assert"
)

func TestStatusLifecycle(t *testing.T) {
	assert.False(t, StatusPending.IsActive())
	assert.True(t, StatusAnalyzing.IsActive())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAnalyzing.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())

	assert.Equal(t, "pending", StatusPending.String())
}

func TestRunRequest(t *testing.T) {
	run := &Run{
		ID:         7,
		OrgName:    "acme",
		ToVersion:  "21",
		Scope:      "all-deprecations",
		MaxRepos:   25,
		KeepClones: true,
		Provider:   "github",
		Status:     StatusPending,
	}

	assert.Equal(t, analysis.Request{
		OrgName:    "acme",
		ToVersion:  "21",
		Scope:      "all-deprecations",
		MaxRepos:   25,
		KeepClones: true,
		Provider:   "github",
	}, run.Request())
}
