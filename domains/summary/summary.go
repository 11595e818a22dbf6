package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/graphshift/graphshift/config"
	"github.com/graphshift/graphshift/domains/analysis"
	"go.uber.org/zap"
)

const (
	// Model is the model used for summarizing findings
	Model = openai.ChatModelGPT4oMini

	// maxFindingsPerRepo caps how many raw findings are quoted per repository
	maxFindingsPerRepo = 20

	systemPrompt = "You are a Java migration analyst. Given per-repository " +
		"findings from a static migration analyzer, write a short plain-text " +
		"summary: the overall risk picture, the most common issue kinds, and " +
		"which repositories need attention first."
)

// Summarizer produces a natural-language summary of an aggregate's findings.
// It is disabled (returns empty summaries) when no API key is configured.
type Summarizer struct {
	l      *zap.Logger
	apiKey string
}

// New creates a Summarizer from configuration
func New(cfg *config.Config, l *zap.Logger) *Summarizer {
	return &Summarizer{l: l, apiKey: cfg.OpenAI.APIKey}
}

// Enabled reports whether summarization is configured
func (s *Summarizer) Enabled() bool {
	return s.apiKey != ""
}

// Summarize generates a summary of the aggregate. Returns an empty string
// without error when summarization is disabled or there is nothing to say.
func (s *Summarizer) Summarize(ctx context.Context, agg *analysis.Aggregate) (string, error) {
	if !s.Enabled() || agg == nil || agg.ReposAnalyzed == 0 {
		return "", nil
	}

	client := openai.NewClient(option.WithAPIKey(s.apiKey))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(agg)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to summarize findings: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no summary returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildPrompt renders the aggregate into a compact textual form
func buildPrompt(agg *analysis.Aggregate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run kind: %s\n", agg.Kind)
	if agg.Organization != "" {
		fmt.Fprintf(&b, "Organization: %s\n", agg.Organization)
	}
	fmt.Fprintf(&b, "Repositories analyzed: %d\nTotal issues: %d\n\n",
		agg.ReposAnalyzed, agg.TotalIssues)

	for _, o := range agg.Outcomes {
		fmt.Fprintf(&b, "Repository %s: %d issues\n", o.Repository, o.TotalIssues)
		for i, f := range o.Findings {
			if i == maxFindingsPerRepo {
				fmt.Fprintf(&b, "  … %d more\n", len(o.Findings)-maxFindingsPerRepo)
				break
			}
			fmt.Fprintf(&b, "  %s\n", string(f))
		}
	}

	return b.String()
}
