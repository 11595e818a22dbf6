package analysis

// AggregateSingle wraps the one outcome of a single-repository run.
// cleanupPath is the clone path for remote targets, empty for local ones;
// the caller decides whether to remove it.
func AggregateSingle(outcome Outcome, cleanupPath string) *Aggregate {
	agg := &Aggregate{
		Kind:          KindSingleRepo,
		Outcomes:      []Outcome{outcome},
		TotalIssues:   outcome.TotalIssues,
		ReposAnalyzed: 1,
	}
	if cleanupPath != "" {
		agg.CleanupPaths = []string{cleanupPath}
	}
	return agg
}

// AggregateOrganization merges per-repository outcomes into a run-level
// result. Failed outcomes are dropped, not zero-filled: totals sum over
// successes only and ReposAnalyzed counts successes only.
func AggregateOrganization(org string, outcomes []Outcome, cleanupPaths []string) *Aggregate {
	successes := make([]Outcome, 0, len(outcomes))
	total := 0
	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		successes = append(successes, o)
		total += o.TotalIssues
	}

	return &Aggregate{
		Kind:          KindOrganization,
		Organization:  org,
		Outcomes:      successes,
		TotalIssues:   total,
		ReposAnalyzed: len(successes),
		CleanupPaths:  cleanupPaths,
	}
}
