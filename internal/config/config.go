package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level agenthooks configuration.
type Config struct {
	ClaudeHome         string    `mapstructure:"claude_home"`
	DBPath             string    `mapstructure:"db_path"`
	MatchWindowSeconds int       `mapstructure:"match_window_seconds"`
	PortRange          PortRange `mapstructure:"port_range"`
	Commit             Commit    `mapstructure:"commit"`
	Output             Output    `mapstructure:"output"`
}

// PortRange bounds the ports the allocator may lease.
type PortRange struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// Commit configures the sub-agent commit automation.
type Commit struct {
	Enabled bool   `mapstructure:"enabled"`
	Prefix  string `mapstructure:"prefix"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
}

// MatchWindow returns the matcher tolerance as a duration.
func (c *Config) MatchWindow() time.Duration {
	return time.Duration(c.MatchWindowSeconds) * time.Second
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("claude_home", DefaultClaudeHome)
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("match_window_seconds", int(DefaultMatchWindow/time.Second))
	v.SetDefault("port_range.min", DefaultPortRange.Min)
	v.SetDefault("port_range.max", DefaultPortRange.Max)
	v.SetDefault("commit.enabled", DefaultCommit.Enabled)
	v.SetDefault("commit.prefix", DefaultCommit.Prefix)
	v.SetDefault("output.color", DefaultOutput.Color)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Expand paths.
	cfg.ClaudeHome = expandPath(cfg.ClaudeHome)
	cfg.DBPath = expandPath(cfg.DBPath)

	return &cfg, nil
}
