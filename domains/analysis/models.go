package analysis

import (
	"github.com/graphshift/graphshift/libs/engine"
)

// Kind distinguishes the two run shapes.
type Kind string

const (
	KindSingleRepo   Kind = "single_repo"
	KindOrganization Kind = "organization"
)

// Origin tags how a repo item was materialized. It is assigned once at
// discovery time and carried unchanged through the scheduler.
type Origin string

const (
	OriginLocal        Origin = "local"
	OriginClonedRemote Origin = "cloned_remote"
)

// Request holds the parameters of one analysis run. Exactly one of RepoPath
// and OrgName must be set.
type Request struct {
	// RepoPath is a single repository: a local path or a remote URL.
	RepoPath string
	// OrgName is an organization: a local directory of repositories or a
	// remote organization identifier.
	OrgName    string
	ToVersion  string
	Scope      string
	MaxRepos   int
	KeepClones bool
	Provider   string
}

// RepoItem is one candidate repository awaiting analysis.
type RepoItem struct {
	Name      string
	LocalPath string
	Origin    Origin
	// Cloned reports whether the clone succeeded. Always true for local items.
	Cloned bool
}

// Outcome is the terminal result of analyzing one repo item. Exactly one
// Outcome exists per item that entered the scheduler.
type Outcome struct {
	Repository  string           `json:"repository"`
	Findings    []engine.Finding `json:"findings"`
	TotalIssues int              `json:"total_issues"`
	Err         error            `json:"-"`
}

// Aggregate is the run-level result. Outcomes contains successes only;
// failed items surface as diminished counts.
type Aggregate struct {
	Kind         Kind      `json:"type"`
	Organization string    `json:"organization,omitempty"`
	Outcomes     []Outcome `json:"repositories"`
	TotalIssues  int       `json:"total_issues"`
	// ReposAnalyzed is the number of successful outcomes, never the number
	// of attempted items.
	ReposAnalyzed int `json:"repos_analyzed"`
	// CleanupPaths lists clone paths the caller may still remove. Empty when
	// cleanup already ran or when the run was local-only.
	CleanupPaths []string `json:"cleanup_paths,omitempty"`
}
