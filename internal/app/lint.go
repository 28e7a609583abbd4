package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/constellos/agenthooks/internal/mdlint"
	"github.com/constellos/agenthooks/internal/output"
)

var lintFlagAgent bool

var lintCmd = &cobra.Command{
	Use:   "lint <file.md>...",
	Short: "Check markdown structure: frontmatter, headings",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&lintFlagAgent, "agent", false, "Require agent-definition frontmatter fields")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	failed := false
	for _, path := range args {
		violations, err := mdlint.LintFile(path, mdlint.Options{RequireDescription: lintFlagAgent})
		if err != nil {
			return err
		}
		if len(violations) == 0 {
			fmt.Printf("%s %s\n", output.StyleSuccess.Render("ok"), path)
			continue
		}
		failed = true
		fmt.Printf("%s %s\n", output.StyleError.Render("fail"), path)
		for _, v := range violations {
			fmt.Printf("  %s\n", v)
		}
	}
	if failed {
		return fmt.Errorf("markdown structure violations found")
	}
	return nil
}
