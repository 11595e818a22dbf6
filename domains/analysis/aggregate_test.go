package analysis

import (
	"errors"
	"testing"

	"github.com/graphshift/graphshift/libs/engine"
	"github.com/stretchr/testify/assert"
)

func TestAggregateSingle(t *testing.T) {
	outcome := Outcome{
		Repository:  "widgets",
		Findings:    []engine.Finding{engine.Finding(`{"kind":"deprecated"}`)},
		TotalIssues: 1,
	}

	agg := AggregateSingle(outcome, "")
	assert.Equal(t, KindSingleRepo, agg.Kind)
	assert.Equal(t, 1, agg.ReposAnalyzed)
	assert.Equal(t, 1, agg.TotalIssues)
	assert.Empty(t, agg.CleanupPaths)

	agg = AggregateSingle(outcome, "/tmp/clones/acme/widgets")
	assert.Equal(t, []string{"/tmp/clones/acme/widgets"}, agg.CleanupPaths)
}

func TestAggregateOrganizationDropsFailures(t *testing.T) {
	outcomes := []Outcome{
		{Repository: "a", TotalIssues: 4},
		{Repository: "b", Err: errors.New("analyzer exploded")},
		{Repository: "c", TotalIssues: 7},
	}

	agg := AggregateOrganization("acme", outcomes, nil)

	assert.Equal(t, KindOrganization, agg.Kind)
	assert.Equal(t, "acme", agg.Organization)
	assert.Equal(t, 2, agg.ReposAnalyzed)
	assert.Equal(t, 11, agg.TotalIssues)
	assert.Len(t, agg.Outcomes, 2)
	for _, o := range agg.Outcomes {
		assert.NotEqual(t, "b", o.Repository)
	}
}

func TestAggregateOrganizationAllFailed(t *testing.T) {
	outcomes := []Outcome{
		{Repository: "a", Err: errors.New("boom")},
		{Repository: "b", Err: errors.New("boom")},
	}

	// Zero successes is still a well-formed zero-count aggregate, not an error.
	agg := AggregateOrganization("acme", outcomes, nil)
	assert.Zero(t, agg.ReposAnalyzed)
	assert.Zero(t, agg.TotalIssues)
	assert.Empty(t, agg.Outcomes)
}
