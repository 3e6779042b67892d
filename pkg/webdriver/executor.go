package webdriver

import (
	"context"
	"encoding/json"
	"fmt"
)

// Capabilities is the capability map exchanged at session creation.
type Capabilities map[string]any

// Clone returns a shallow copy so callers can tweak without aliasing.
func (c Capabilities) Clone() Capabilities {
	if c == nil {
		return nil
	}
	out := make(Capabilities, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Params is a command parameter map.
type Params map[string]any

// Response is the unified command result shape. Status zero means success;
// any other status carries a driver-level failure the caller inspects, it is
// never surfaced as a Go error.
type Response struct {
	Status    int             `json:"status"`
	SessionID string          `json:"sessionId"`
	Value     json.RawMessage `json:"value,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// Failed reports whether the response carries a driver-level failure.
func (r *Response) Failed() bool {
	return r != nil && r.Status != 0
}

// DecodeValue unmarshals the response value into out.
func (r *Response) DecodeValue(out any) error {
	if r == nil || len(r.Value) == 0 {
		return fmt.Errorf("response has no value")
	}
	return json.Unmarshal(r.Value, out)
}

// SyntheticSuccess builds a locally fabricated success response for a
// command that must not reach the wire.
func SyntheticSuccess(sessionID string) *Response {
	return &Response{Status: 0, SessionID: sessionID}
}

// Executor forwards named commands to whatever owns the session. The generic
// driver model ships an HTTP executor; the bridge substitutes its own at
// construction so every command flows through the agent.
type Executor interface {
	Execute(ctx context.Context, name string, params Params) (*Response, error)
}
