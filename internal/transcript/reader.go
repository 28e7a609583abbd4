package transcript

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is returned by Read when the transcript file does not exist.
var ErrNotFound = errors.New("transcript file not found")

// ErrEmptyTranscript is returned by Read when the file exists but contains
// zero valid messages.
var ErrEmptyTranscript = errors.New("transcript contains no valid messages")

// Read parses one JSONL transcript file into a Transcript. Each line is
// matched against the message union; a line that fails to parse or whose type
// tag is unrecognized is silently skipped. Identity fields are taken from the
// first valid message and later messages are trusted to agree.
func Read(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	t := &Transcript{Path: path}

	scanner := bufio.NewScanner(f)
	// Increase buffer for long JSONL lines (up to 10MB).
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()

		var msg Message
		if err := json.Unmarshal(line, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case MessageTypeUser, MessageTypeAssistant, MessageTypeSystem:
		default:
			// Summaries and other housekeeping records.
			continue
		}

		if len(t.Messages) == 0 {
			t.SessionID = msg.SessionID
			t.AgentID = msg.AgentID
			t.IsSidechain = msg.IsSidechain
			t.SubagentType = msg.SubagentType
		}
		t.Messages = append(t.Messages, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	if len(t.Messages) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTranscript, path)
	}

	return t, nil
}
