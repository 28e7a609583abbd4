package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/constellos/agenthooks/internal/gitops"
	"github.com/constellos/agenthooks/internal/output"
)

var prStatusFlagDir string

var prStatusCmd = &cobra.Command{
	Use:   "pr-status",
	Short: "Poll open pull request check status",
	Long: `Lists this repository's open pull requests via gh and polls each one's
checks concurrently.`,
	RunE: runPRStatus,
}

func init() {
	prStatusCmd.Flags().StringVar(&prStatusFlagDir, "dir", ".", "Repository directory")
	rootCmd.AddCommand(prStatusCmd)
}

func runPRStatus(cmd *cobra.Command, args []string) error {
	runner := gitops.ExecRunner{}
	if !gitops.IsRepo(runner, prStatusFlagDir) {
		return fmt.Errorf("%s is not a git repository", prStatusFlagDir)
	}

	statuses, err := gitops.PollPRStatuses(cmd.Context(), runner, prStatusFlagDir)
	if err != nil {
		return err
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(statuses)
	}
	if len(statuses) == 0 {
		fmt.Println("No open pull requests.")
		return nil
	}

	tbl := output.NewTable("PR", "TITLE", "STATE", "CHECKS")
	for _, s := range statuses {
		tbl.AddRow(fmt.Sprintf("#%d", s.Number), s.Title, s.State, output.Status(s.Checks))
	}
	tbl.Print()
	return nil
}
