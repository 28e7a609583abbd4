package hooks

import (
	"encoding/json"
	"io"
)

// Decision values a hook may return. An empty decision allows the action.
const (
	DecisionBlock = "block"
)

// Output is the response a hook writes to stdout.
type Output struct {
	Decision           string        `json:"decision,omitempty"`
	Reason             string        `json:"reason,omitempty"`
	SystemMessage      string        `json:"systemMessage,omitempty"`
	HookSpecificOutput *EventContext `json:"hookSpecificOutput,omitempty"`
}

// EventContext attaches extra context to the event that triggered the hook.
type EventContext struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext,omitempty"`
}

// Allow returns the empty response: proceed with the host action.
func Allow() *Output {
	return &Output{}
}

// Block returns a blocking response with the given reason.
func Block(reason string) *Output {
	return &Output{Decision: DecisionBlock, Reason: reason}
}

// AddContext returns an allowing response that annotates the event.
func AddContext(event, text string) *Output {
	return &Output{
		HookSpecificOutput: &EventContext{
			HookEventName:     event,
			AdditionalContext: text,
		},
	}
}

// Write marshals the response to w. The empty allow response writes "{}" so
// the host always sees valid JSON.
func (o *Output) Write(w io.Writer) error {
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
