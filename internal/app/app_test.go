package app

import (
	"testing"

	"github.com/constellos/agenthooks/internal/hooks"
	"github.com/constellos/agenthooks/internal/store"
	"github.com/constellos/agenthooks/internal/taskedits"
)

func TestParsePortFlag(t *testing.T) {
	cases := []struct {
		command string
		want    int
	}{
		{"npm run dev -- --port 3000", 3000},
		{"vite --port=5173", 5173},
		{"next dev -p 4000", 4000},
		{"npm run dev", 0},
		{"serve --port notanumber", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := parsePortFlag(c.command); got != c.want {
			t.Errorf("parsePortFlag(%q) = %d, want %d", c.command, got, c.want)
		}
	}
}

func TestPortDecision(t *testing.T) {
	lease := &store.PortLease{Port: 3000, Service: "vite", SessionID: "sess-1"}

	if out := portDecision(nil, "sess-1", 3000); out.Decision != "" {
		t.Errorf("unleased port: decision = %q, want allow", out.Decision)
	}
	if out := portDecision(lease, "sess-1", 3000); out.Decision != "" {
		t.Errorf("own lease: decision = %q, want allow", out.Decision)
	}
	out := portDecision(lease, "sess-2", 3000)
	if out.Decision != hooks.DecisionBlock {
		t.Errorf("foreign lease: decision = %q, want %q", out.Decision, hooks.DecisionBlock)
	}
	if out.Reason == "" {
		t.Error("foreign lease: expected a reason")
	}
}

func TestHasFileChanges(t *testing.T) {
	cases := []struct {
		name string
		res  taskedits.Result
		want bool
	}{
		{"none", taskedits.Result{}, false},
		{"new only", taskedits.Result{AgentNewFiles: []string{"a.go"}}, true},
		{"edited only", taskedits.Result{AgentEditedFiles: []string{"a.go"}}, true},
		{"deleted only", taskedits.Result{AgentDeletedFiles: []string{"old.go"}}, true},
	}
	for _, c := range cases {
		if got := hasFileChanges(&c.res); got != c.want {
			t.Errorf("%s: hasFileChanges = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestIsAgentDefinition(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/work/app/.claude/agents/ui-developer.md", true},
		{".claude/agents/explorer.md", true},
		{"/work/app/docs/README.md", false},
		{"/work/app/.claude/commands/deploy.md", false},
	}
	for _, c := range cases {
		if got := isAgentDefinition(c.path); got != c.want {
			t.Errorf("isAgentDefinition(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestShorten(t *testing.T) {
	if got := shorten("abcdefghij"); got != "abcdefgh" {
		t.Errorf("shorten = %q, want %q", got, "abcdefgh")
	}
	if got := shorten("abc"); got != "abc" {
		t.Errorf("shorten = %q, want %q", got, "abc")
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one\ntwo"); got != "one …" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("single"); got != "single" {
		t.Errorf("firstLine = %q", got)
	}
}
