package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/constellos/agenthooks/internal/output"
	"github.com/constellos/agenthooks/internal/taskedits"
)

// scanConcurrency bounds how many transcripts are assembled at once.
const scanConcurrency = 8

var sessionsFlagLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent sub-agent runs across all projects",
	Long: `Scans every project transcript directory under the Claude data dir for
sub-agent logs, assembles each one's task edits, and lists the results.

Runs whose parent transcript is gone, or whose log is empty, are skipped.`,
	RunE: runSessionsScan,
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsFlagLimit, "limit", 20, "Maximum runs to display")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths, err := findAgentTranscripts(cfg.ClaudeHome)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No sub-agent transcripts found.")
		return nil
	}

	// Scanning consumes no side-channel context: reading another run's
	// stored prompt here would steal it from the hook that owns it.
	opts := taskedits.Options{MatchWindow: cfg.MatchWindow()}

	var mu sync.Mutex
	var results []*taskedits.Result

	var g errgroup.Group
	g.SetLimit(scanConcurrency)
	for _, path := range paths {
		g.Go(func() error {
			res, err := taskedits.Assemble(path, opts)
			if err != nil {
				// Partial logs are normal in a live data dir.
				return nil
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(results, func(a, b int) bool {
		return results[a].AgentTranscriptPath < results[b].AgentTranscriptPath
	})
	if len(results) > sessionsFlagLimit {
		results = results[:sessionsFlagLimit]
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	tbl := output.NewTable("SESSION", "AGENT", "TYPE", "NEW", "EDITED", "DELETED", "PROMPT")
	for _, r := range results {
		tbl.AddRow(
			shorten(r.SessionID), shorten(r.AgentSessionID), r.SubagentType,
			fmt.Sprint(len(r.AgentNewFiles)),
			fmt.Sprint(len(r.AgentEditedFiles)),
			fmt.Sprint(len(r.AgentDeletedFiles)),
			firstLine(r.AgentPrompt),
		)
	}
	tbl.Print()
	return nil
}

// findAgentTranscripts collects agent-*.jsonl files under every project
// directory of the Claude data dir.
func findAgentTranscripts(claudeHome string) ([]string, error) {
	projectsDir := filepath.Join(claudeHome, "projects")
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(projectsDir, entry.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			if taskedits.IsAgentTranscriptPath(f.Name()) {
				paths = append(paths, filepath.Join(dir, f.Name()))
			}
		}
	}
	return paths, nil
}

// shorten trims an id for table display.
func shorten(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
