// Package config provides configuration loading and defaults for agenthooks.
package config

import "time"

// DefaultClaudeHome is the default location of Claude Code's data directory.
const DefaultClaudeHome = "~/.claude"

// DefaultConfigDir is the default location for agenthooks configuration.
const DefaultConfigDir = "~/.config/agenthooks"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "agenthooks.db"

// DefaultMatchWindow is the default tolerance for correlating a sub-agent
// transcript with the Task invocation that spawned it: a spawn older than
// this relative to the sub-agent's first message is not a candidate. The
// window is deliberately an explicit configuration value, not a constant
// buried in the matcher.
const DefaultMatchWindow = 5 * time.Minute

// DefaultPortRange holds the default port allocation range for development
// services.
var DefaultPortRange = PortRange{Min: 3000, Max: 3999}

// DefaultCommit holds the default commit-automation settings.
var DefaultCommit = Commit{
	Enabled: true,
	Prefix:  "agent",
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
}
