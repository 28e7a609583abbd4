package fileops

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/constellos/agenthooks/internal/transcript"
)

func readTranscript(t *testing.T, lines ...string) *transcript.Transcript {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agent-t.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	tr, err := transcript.Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return tr
}

func toolLine(uuid, ts, block string) string {
	return `{"type":"assistant","uuid":"` + uuid + `","timestamp":"` + ts + `","sessionId":"s","isSidechain":true,"agentId":"a1","message":{"role":"assistant","content":[` + block + `]}}`
}

func writeBlock(id, path string) string {
	return `{"type":"tool_use","id":"` + id + `","name":"Write","input":{"file_path":"` + path + `","content":"x"}}`
}

func editBlock(id, path string) string {
	return `{"type":"tool_use","id":"` + id + `","name":"Edit","input":{"file_path":"` + path + `","old_string":"a","new_string":"b"}}`
}

func bashBlock(id, command string) string {
	return `{"type":"tool_use","id":"` + id + `","name":"Bash","input":{"command":"` + command + `"}}`
}

func TestExtract_CreateThenEdit(t *testing.T) {
	tr := readTranscript(t,
		toolLine("m1", "2024-01-01T00:00:01Z", writeBlock("t1", "src/Login.tsx")),
		toolLine("m2", "2024-01-01T00:00:02Z", editBlock("t2", "src/Login.tsx")),
		toolLine("m3", "2024-01-01T00:00:03Z", bashBlock("t3", "rm src/OldLogin.tsx")),
	)

	ch := Extract(tr)
	if !reflect.DeepEqual(ch.New, []string{"src/Login.tsx"}) {
		t.Errorf("New = %v, want [src/Login.tsx]", ch.New)
	}
	if !reflect.DeepEqual(ch.Edited, []string{"src/Login.tsx"}) {
		t.Errorf("Edited = %v, want [src/Login.tsx]", ch.Edited)
	}
	if !reflect.DeepEqual(ch.Deleted, []string{"src/OldLogin.tsx"}) {
		t.Errorf("Deleted = %v, want [src/OldLogin.tsx]", ch.Deleted)
	}
}

func TestExtract_DuplicateCreateDedups(t *testing.T) {
	// A retried Write must not list the path twice.
	tr := readTranscript(t,
		toolLine("m1", "2024-01-01T00:00:01Z", writeBlock("t1", "a.go")),
		toolLine("m2", "2024-01-01T00:00:02Z", writeBlock("t2", "a.go")),
	)

	ch := Extract(tr)
	if !reflect.DeepEqual(ch.New, []string{"a.go"}) {
		t.Errorf("New = %v, want [a.go]", ch.New)
	}
	// The second Write is a full overwrite of an already-seen path.
	if !reflect.DeepEqual(ch.Edited, []string{"a.go"}) {
		t.Errorf("Edited = %v, want [a.go]", ch.Edited)
	}
}

func TestExtract_EditWithoutCreate(t *testing.T) {
	tr := readTranscript(t,
		toolLine("m1", "2024-01-01T00:00:01Z", editBlock("t1", "main.go")),
		toolLine("m2", "2024-01-01T00:00:02Z", editBlock("t2", "main.go")),
	)

	ch := Extract(tr)
	if len(ch.New) != 0 {
		t.Errorf("New = %v, want empty", ch.New)
	}
	if !reflect.DeepEqual(ch.Edited, []string{"main.go"}) {
		t.Errorf("Edited = %v, want [main.go]", ch.Edited)
	}
}

func TestExtract_DeletionKeepsNewAndEdited(t *testing.T) {
	tr := readTranscript(t,
		toolLine("m1", "2024-01-01T00:00:01Z", writeBlock("t1", "tmp.go")),
		toolLine("m2", "2024-01-01T00:00:02Z", bashBlock("t2", "rm tmp.go")),
	)

	ch := Extract(tr)
	if !reflect.DeepEqual(ch.New, []string{"tmp.go"}) {
		t.Errorf("New = %v, want [tmp.go] (deletion must not remove it)", ch.New)
	}
	if !reflect.DeepEqual(ch.Deleted, []string{"tmp.go"}) {
		t.Errorf("Deleted = %v, want [tmp.go]", ch.Deleted)
	}
}

func TestExtract_OrderPreserved(t *testing.T) {
	tr := readTranscript(t,
		toolLine("m1", "2024-01-01T00:00:01Z", writeBlock("t1", "b.go")),
		toolLine("m2", "2024-01-01T00:00:02Z", writeBlock("t2", "a.go")),
		toolLine("m3", "2024-01-01T00:00:03Z", writeBlock("t3", "c.go")),
	)

	ch := Extract(tr)
	want := []string{"b.go", "a.go", "c.go"}
	if !reflect.DeepEqual(ch.New, want) {
		t.Errorf("New = %v, want %v (first-occurrence order)", ch.New, want)
	}
}

func TestDeletedPaths(t *testing.T) {
	cases := []struct {
		command string
		want    []string
	}{
		{"rm src/OldLogin.tsx", []string{"src/OldLogin.tsx"}},
		{"rm -rf build dist", []string{"build", "dist"}},
		{"rm -f 'a file.txt'", []string{"a file.txt"}},
		{`rm "b file.txt"`, []string{"b file.txt"}},
		{"git rm --cached legacy.go", []string{"legacy.go"}},
		{"go build && rm out.bin", []string{"out.bin"}},
		{"rm a.txt; rm b.txt", []string{"a.txt", "b.txt"}},
		{"rm -- -weird-name", []string{"-weird-name"}},
		{"ls -la", nil},
		{"echo rm is fun", nil},
		{"grep rm main.go | head", nil},
		{"", nil},
	}

	for _, c := range cases {
		got := DeletedPaths(c.command)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("DeletedPaths(%q) = %v, want %v", c.command, got, c.want)
		}
	}
}
