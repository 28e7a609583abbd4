// Package app contains the Cobra command tree for agenthooks.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/constellos/agenthooks/internal/config"
	"github.com/constellos/agenthooks/internal/output"
	"github.com/constellos/agenthooks/internal/store"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "agenthooks",
	Short: "Lifecycle hooks for Claude Code sessions and sub-agents",
	Long: `agenthooks implements the hook commands Claude Code invokes around tool
calls and sub-agent runs. Its core reconstructs what each sub-agent was asked
to do and which files it created, edited, or deleted, by correlating the
sub-agent's transcript with its parent session transcript. Collaborator hooks
act on that result: commit automation, markdown structure linting, port
allocation, and PR status polling.

Hook subcommands read the host's JSON payload on stdin and never block the
host action on a correlation failure.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("agenthooks", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  hook       Hook entry points invoked by the host (stdin JSON)")
		fmt.Println("  edits      Run the task-edits engine on a sub-agent transcript")
		fmt.Println("  sessions   List recent sub-agent runs across all projects")
		fmt.Println("  ports      Allocate and release development-service ports")
		fmt.Println("  pr-status  Poll open pull request check status")
		fmt.Println("  lint       Check a markdown file's structure")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/agenthooks/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagNoColor {
		cfg.Output.Color = false
	}
	output.SetNoColor(!output.ColorEnabled(cfg.Output.Color))
	return cfg, nil
}

// openStore opens the shared SQLite store at the configured path.
func openStore(cfg *config.Config) (*store.DB, error) {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", cfg.DBPath, err)
	}
	return db, nil
}
