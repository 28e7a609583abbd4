package gitops

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// prPollConcurrency bounds how many gh invocations run at once.
const prPollConcurrency = 4

// PRStatus summarizes one open pull request's check state.
type PRStatus struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	Checks string `json:"checks"` // passing, failing, pending, none
}

// prListEntry is the slice of `gh pr list --json` output we consume.
type prListEntry struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
}

// checkRun is one element of `gh pr checks --json` output.
type checkRun struct {
	State string `json:"state"`
}

// PollPRStatuses lists open pull requests and polls each one's checks
// concurrently. Failures on individual PRs degrade that entry to a
// "unknown" checks state rather than failing the whole poll.
func PollPRStatuses(ctx context.Context, r Runner, dir string) ([]PRStatus, error) {
	out, err := r.Run(dir, "gh", "pr", "list", "--json", "number,title,state")
	if err != nil {
		return nil, fmt.Errorf("listing pull requests: %w", err)
	}

	var entries []prListEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		return nil, fmt.Errorf("parsing gh pr list output: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	statuses := make([]PRStatus, len(entries))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(prPollConcurrency)

	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			checks := pollChecks(r, dir, entry.Number)
			mu.Lock()
			statuses[i] = PRStatus{
				Number: entry.Number,
				Title:  entry.Title,
				State:  entry.State,
				Checks: checks,
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(statuses, func(a, b int) bool { return statuses[a].Number < statuses[b].Number })
	return statuses, nil
}

// pollChecks classifies one PR's check runs.
func pollChecks(r Runner, dir string, number int) string {
	out, err := r.Run(dir, "gh", "pr", "checks", fmt.Sprint(number), "--json", "state")
	if err != nil {
		return "unknown"
	}

	var runs []checkRun
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		return "unknown"
	}
	return summarizeChecks(runs)
}

// summarizeChecks folds check-run states into one word: any failure wins,
// then any pending, then passing; no runs at all reports "none".
func summarizeChecks(runs []checkRun) string {
	if len(runs) == 0 {
		return "none"
	}
	summary := "passing"
	for _, run := range runs {
		switch run.State {
		case "FAILURE", "ERROR", "CANCELLED", "TIMED_OUT":
			return "failing"
		case "PENDING", "QUEUED", "IN_PROGRESS":
			summary = "pending"
		}
	}
	return summary
}
