package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/graphshift/graphshift/libs/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAnalyzer counts in-flight invocations and fails selected repositories.
type fakeAnalyzer struct {
	mu        sync.Mutex
	inFlight  int64
	maxSeen   int64
	calls     atomic.Int64
	delay     time.Duration
	slowPaths map[string]time.Duration
	failPaths map[string]bool
	findings  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, dir, toVersion, scope string) (*engine.Report, error) {
	f.calls.Add(1)

	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	delay := f.delay
	if d, ok := f.slowPaths[dir]; ok {
		delay = d
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.failPaths[dir] {
		return nil, errors.New("analyzer exploded")
	}

	findings := make([]engine.Finding, f.findings)
	for i := range findings {
		findings[i] = engine.Finding(fmt.Sprintf(`{"id":%d}`, i))
	}
	return &engine.Report{Findings: findings, TotalIssues: len(findings)}, nil
}

func (f *fakeAnalyzer) maxInFlight() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxSeen
}

// countingSink records notifications; safe for concurrent use.
type countingSink struct {
	mu       sync.Mutex
	messages []string
}

func (s *countingSink) Notify(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
}

func (s *countingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func makeItems(n int) []RepoItem {
	items := make([]RepoItem, n)
	for i := range items {
		items[i] = RepoItem{
			Name:      fmt.Sprintf("repo-%d", i),
			LocalPath: fmt.Sprintf("/tmp/repo-%d", i),
			Origin:    OriginLocal,
			Cloned:    true,
		}
	}
	return items
}

func TestSchedulerRespectsConcurrencyBound(t *testing.T) {
	for _, limit := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("limit_%d", limit), func(t *testing.T) {
			fake := &fakeAnalyzer{delay: 10 * time.Millisecond, findings: 1}
			s := NewScheduler(fake, limit, zap.NewNop())

			outcomes := s.Run(context.Background(), makeItems(12), "21", "all-deprecations", NopSink{})

			require.Len(t, outcomes, 12)
			assert.LessOrEqual(t, fake.maxInFlight(), int64(limit))
		})
	}
}

func TestSchedulerOneTerminalOutcomePerItem(t *testing.T) {
	fake := &fakeAnalyzer{findings: 2, failPaths: map[string]bool{
		"/tmp/repo-1": true,
		"/tmp/repo-4": true,
	}}
	s := NewScheduler(fake, 3, zap.NewNop())

	items := makeItems(6)
	outcomes := s.Run(context.Background(), items, "21", "all-deprecations", NopSink{})

	require.Len(t, outcomes, len(items))
	assert.Equal(t, int64(len(items)), fake.calls.Load())

	seen := map[string]bool{}
	for _, o := range outcomes {
		assert.False(t, seen[o.Repository], "duplicate outcome for %s", o.Repository)
		seen[o.Repository] = true
	}
	for _, item := range items {
		assert.True(t, seen[item.Name], "missing outcome for %s", item.Name)
	}
}

func TestSchedulerIsolatesFailures(t *testing.T) {
	fake := &fakeAnalyzer{findings: 3, failPaths: map[string]bool{"/tmp/repo-2": true}}
	s := NewScheduler(fake, 2, zap.NewNop())

	outcomes := s.Run(context.Background(), makeItems(4), "21", "all-deprecations", NopSink{})

	require.Len(t, outcomes, 4)
	for _, o := range outcomes {
		if o.Repository == "repo-2" {
			assert.Error(t, o.Err)
			assert.Zero(t, o.TotalIssues)
		} else {
			assert.NoError(t, o.Err)
			assert.Equal(t, 3, o.TotalIssues)
		}
	}
}

func TestSchedulerNotifiesProgress(t *testing.T) {
	fake := &fakeAnalyzer{findings: 1}
	sink := &countingSink{}
	s := NewScheduler(fake, 2, zap.NewNop())

	s.Run(context.Background(), makeItems(3), "21", "all-deprecations", sink)

	// Batch start plus before and after each successful item.
	assert.Equal(t, 1+2*3, sink.count())
}

func TestSchedulerSlowItemDoesNotStallSiblings(t *testing.T) {
	fake := &fakeAnalyzer{
		findings:  1,
		slowPaths: map[string]time.Duration{"/tmp/repo-0": 100 * time.Millisecond},
	}
	s := NewScheduler(fake, 2, zap.NewNop())

	outcomes := s.Run(context.Background(), makeItems(6), "21", "all-deprecations", NopSink{})

	// Run joins on every item, slow one included, and all succeed.
	require.Len(t, outcomes, 6)
	for _, o := range outcomes {
		assert.NoError(t, o.Err)
		assert.Equal(t, 1, o.TotalIssues)
	}
	assert.Equal(t, int64(6), fake.calls.Load())
}

func TestSchedulerLimitFloor(t *testing.T) {
	fake := &fakeAnalyzer{findings: 1}
	s := NewScheduler(fake, 0, zap.NewNop())

	outcomes := s.Run(context.Background(), makeItems(2), "21", "all-deprecations", NopSink{})

	require.Len(t, outcomes, 2)
	assert.Equal(t, int64(1), fake.maxInFlight())
}
