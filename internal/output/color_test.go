package output

import (
	"strings"
	"testing"
)

func TestColorEnabled_ConfigOffWins(t *testing.T) {
	// A disabled config must win regardless of whether stdout is a terminal.
	if ColorEnabled(false) {
		t.Error("ColorEnabled(false) = true, want false")
	}
}

func TestSetNoColor_StripsStyling(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if !IsNoColor() {
		t.Error("IsNoColor() = false after SetNoColor(true)")
	}
	if got := StyleHeader.Render("Sub-agent run"); got != "Sub-agent run" {
		t.Errorf("StyleHeader.Render = %q, want unstyled text", got)
	}
	for _, word := range []string{"passing", "failing", "pending"} {
		if got := Status(word); got != word {
			t.Errorf("Status(%q) = %q, want bare word", word, got)
		}
	}
}

func TestSetNoColor_TableRendersPlain(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("PORT", "SERVICE")
	tbl.AddRow("3000", "vite")
	got := tbl.Render()
	if strings.Contains(got, "\x1b[") {
		t.Errorf("table output contains escape sequences: %q", got)
	}
}
