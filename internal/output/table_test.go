package output

import (
	"strings"
	"testing"
)

func TestTable_Render(t *testing.T) {
	tbl := NewTable("PORT", "SERVICE", "SESSION")
	tbl.AddRow("3000", "vite", "sess-1")
	tbl.AddRow("3001", "storybook", "sess-2")

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header, rule, 2 rows), got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "vite") {
		t.Errorf("row 1 missing value: %q", lines[2])
	}
	if !strings.Contains(lines[3], "storybook") {
		t.Errorf("row 2 missing value: %q", lines[3])
	}
}

func TestTable_MissingValuesRenderEmpty(t *testing.T) {
	tbl := NewTable("A", "B")
	tbl.AddRow("only-a")

	out := tbl.Render()
	if !strings.Contains(out, "only-a") {
		t.Errorf("missing cell value in output:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 100)
	got := truncate(long, maxCellWidth)
	if len(got) != maxCellWidth {
		t.Errorf("len(truncate) = %d, want %d", len(got), maxCellWidth)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-5:])
	}
	if truncate("short", maxCellWidth) != "short" {
		t.Error("short strings must pass through unchanged")
	}
}
