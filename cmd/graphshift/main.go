package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/graphshift/graphshift/config"
	"github.com/graphshift/graphshift/domains/analysis"
	"github.com/graphshift/graphshift/domains/health"
	"github.com/graphshift/graphshift/pkg/logger"
	"github.com/graphshift/graphshift/pkg/report"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:           "graphshift",
		Short:         "GraphShift - Java migration analysis tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "configuration file path")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newAnalyzeCmd(), newHealthCmd())

	if err := root.ExecuteContext(signalContext()); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("Operation cancelled by user")
			os.Exit(130)
		}
		fmt.Println("Operation failed:", err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		repo      string
		localPath string
		org       string
		localOrg  string
		toVersion string
		scope     string
		maxRepos  int
		noKeep    bool
		provider  string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze Java repositories for migration issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := analysis.Request{
				RepoPath:   firstNonEmpty(repo, localPath),
				OrgName:    firstNonEmpty(org, localOrg),
				ToVersion:  toVersion,
				Scope:      scope,
				MaxRepos:   maxRepos,
				KeepClones: !noKeep,
				Provider:   provider,
			}
			if (req.RepoPath == "") == (req.OrgName == "") {
				return fmt.Errorf("exactly one of --repo, --local-path, --org, --local-org is required")
			}
			return runAnalyze(cmd.Context(), req)
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "single repository URL")
	cmd.Flags().StringVar(&localPath, "local-path", "", "local repository path")
	cmd.Flags().StringVar(&org, "org", "", "organization name")
	cmd.Flags().StringVar(&localOrg, "local-org", "", "local organization directory")
	cmd.Flags().StringVar(&toVersion, "to-version", "21", "target JDK version (8, 11, 17, 21)")
	cmd.Flags().StringVar(&scope, "scope", "all-deprecations", "analysis scope (upgrade-blockers, all-deprecations)")
	cmd.Flags().IntVar(&maxRepos, "max-repos", 50, "maximum repositories to analyze")
	cmd.Flags().BoolVar(&noKeep, "no-keep-clones", false, "delete clones after analysis")
	cmd.Flags().StringVar(&provider, "provider", "github", "SCM provider (github)")

	return cmd
}

func runAnalyze(ctx context.Context, req analysis.Request) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l := logger.New(cfg)
	defer l.Sync()

	if req.RepoPath != "" {
		fmt.Println("Starting analysis:", req.RepoPath)
	} else {
		fmt.Printf("Starting organization analysis: %s (up to %d repos)\n", req.OrgName, req.MaxRepos)
	}

	svc := analysis.NewDefaultService(cfg, l)
	sink := analysis.NewWriterSink(os.Stdout)

	agg, err := svc.Run(ctx, req, sink)
	if err != nil {
		return err
	}

	fmt.Printf("Analysis complete: %d issues found across %d repositories\n",
		agg.TotalIssues, agg.ReposAnalyzed)

	saved, err := report.NewWriter(cfg.Analysis.ReportDir).Save(agg)
	if err != nil {
		return err
	}
	fmt.Printf("Reports saved: %d files\n", len(saved))
	for _, p := range saved {
		fmt.Println("  -", p)
	}

	if len(agg.CleanupPaths) > 0 {
		fmt.Printf("Clones retained: %d repositories under %s\n",
			len(agg.CleanupPaths), cfg.Analysis.CloneDir)
	}

	fmt.Println("Operation completed successfully")
	return nil
}

func newHealthCmd() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check system health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Println("Running system health check...")
			result := health.Perform(cfg)

			status := "HEALTHY"
			if !result.Healthy {
				status = "UNHEALTHY"
			}
			fmt.Println("System health:", status)

			if detailed {
				for _, c := range result.Checks {
					mark := "ok"
					if !c.Passed {
						mark = "FAIL"
					}
					fmt.Printf("  [%s] %s: %s\n", mark, c.Name, c.Message)
				}
			}

			if !result.Healthy {
				return fmt.Errorf("health check failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "show individual checks")
	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if verbose {
		cfg.Env = "dev"
	}
	return cfg, nil
}

func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
