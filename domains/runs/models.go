package runs

// Run is one queued or executed analysis run.
type Run struct {
	ID            int64
	RepoPath      string
	OrgName       string
	ToVersion     string
	Scope         string
	MaxRepos      int
	KeepClones    bool
	Provider      string
	Status        Status
	Error         string
	TotalIssues   int
	ReposAnalyzed int
	// Result is the aggregate as JSON, set when the run completes.
	Result  []byte
	Summary string
	Created int64
	Updated int64
}

// CreateParams contains parameters for enqueuing a run
type CreateParams struct {
	RepoPath   string
	OrgName    string
	ToVersion  string
	Scope      string
	MaxRepos   int
	KeepClones bool
	Provider   string
}

// ListParams contains parameters for listing runs
type ListParams struct {
	Status *Status
	Limit  int
	Offset int
}

// ListResult contains the result of listing runs
type ListResult struct {
	Runs  []Run
	Total int64
}
