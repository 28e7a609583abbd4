// Package fileops reconstructs file-lifecycle state from a transcript's tool
// invocations: which paths a run created, edited, and deleted.
package fileops

import (
	"github.com/constellos/agenthooks/internal/transcript"
)

// Changes holds the classified file paths of one transcript. Each list is
// deduplicated and preserves first-occurrence order. The lists are not
// mutually exclusive: a file created and later revised in the same run
// appears in both New and Edited, and a deletion never removes a path from
// New or Edited; callers decide how to resolve created-then-deleted.
type Changes struct {
	New     []string
	Edited  []string
	Deleted []string
}

// Extract walks the transcript's tool invocations in file order and
// classifies every touched path.
func Extract(t *transcript.Transcript) Changes {
	var ch Changes
	seen := make(map[string]bool)    // any create/modify target observed so far
	inNew := make(map[string]bool)   // already listed in New
	inEdit := make(map[string]bool)  // already listed in Edited
	inDel := make(map[string]bool)   // already listed in Deleted

	addNew := func(path string) {
		if path == "" || inNew[path] {
			return
		}
		inNew[path] = true
		ch.New = append(ch.New, path)
	}
	addEdited := func(path string) {
		if path == "" || inEdit[path] {
			return
		}
		inEdit[path] = true
		ch.Edited = append(ch.Edited, path)
	}
	addDeleted := func(path string) {
		if path == "" || inDel[path] {
			return
		}
		inDel[path] = true
		ch.Deleted = append(ch.Deleted, path)
	}

	for _, use := range t.ToolUses() {
		switch in := use.Input.(type) {
		case transcript.WriteInput:
			// A write to an unseen path is a creation; a write to a path
			// this run already touched is a full overwrite.
			if seen[in.FilePath] {
				addEdited(in.FilePath)
			} else {
				addNew(in.FilePath)
			}
			seen[in.FilePath] = true

		case transcript.EditInput:
			addEdited(in.FilePath)
			seen[in.FilePath] = true

		case transcript.MultiEditInput:
			addEdited(in.FilePath)
			seen[in.FilePath] = true

		case transcript.BashInput:
			for _, path := range DeletedPaths(in.Command) {
				addDeleted(path)
			}
		}
	}

	return ch
}
