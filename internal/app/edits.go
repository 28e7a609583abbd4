package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/constellos/agenthooks/internal/output"
	"github.com/constellos/agenthooks/internal/taskedits"
)

var editsCmd = &cobra.Command{
	Use:   "edits <agent-transcript.jsonl>",
	Short: "Run the task-edits engine on one sub-agent transcript",
	Long: `Reads a sub-agent transcript, correlates it with its parent session
transcript, and prints what the sub-agent was asked to do and which files it
created, edited, or deleted.

Example:
  agenthooks edits ~/.claude/projects/abc123/agent-deadbeef.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runEdits,
}

func init() {
	rootCmd.AddCommand(editsCmd)
}

func runEdits(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := taskedits.Options{MatchWindow: cfg.MatchWindow()}
	if db, err := openStore(cfg); err == nil {
		defer db.Close()
		opts.Store = db
	}

	res, err := taskedits.Assemble(args[0], opts)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Println(output.StyleHeader.Render("Sub-agent run"))
	fmt.Printf("  session   %s\n", res.SessionID)
	fmt.Printf("  agent     %s (%s)\n", res.AgentSessionID, res.SubagentType)
	if res.AgentPrompt != "" {
		fmt.Printf("  prompt    %s\n", firstLine(res.AgentPrompt))
	}
	if res.AgentDefinitionFile != "" {
		fmt.Printf("  definition %s\n", res.AgentDefinitionFile)
	}
	fmt.Println()

	printFileList("new", output.StyleSuccess, res.AgentNewFiles)
	printFileList("edited", output.StyleWarning, res.AgentEditedFiles)
	printFileList("deleted", output.StyleError, res.AgentDeletedFiles)
	return nil
}

func printFileList(label string, style interface{ Render(...string) string }, files []string) {
	if len(files) == 0 {
		return
	}
	fmt.Println(style.Render(fmt.Sprintf("%s (%d)", label, len(files))))
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx] + " …"
	}
	return s
}
