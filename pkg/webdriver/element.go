package webdriver

import (
	"context"
	"encoding/json"
	"fmt"
)

// Legacy and W3C element payloads use different identifier keys.
const (
	legacyElementKey = "ELEMENT"
	w3cElementKey    = "element-6066-11e4-a52e-4f735466cecf"
)

// Element is a handle to a located element, bound to the executor that
// located it.
type Element struct {
	ID        string
	sessionID string
	exec      Executor
}

// NewElement binds an element identifier to an executor and session.
func NewElement(id, sessionID string, exec Executor) *Element {
	return &Element{ID: id, sessionID: sessionID, exec: exec}
}

// DecodeElementID extracts the element identifier from a find-element
// response value, accepting either dialect's key.
func DecodeElementID(value json.RawMessage) (string, error) {
	var payload map[string]string
	if err := json.Unmarshal(value, &payload); err != nil {
		return "", fmt.Errorf("decode element payload: %w", err)
	}
	if id, ok := payload[w3cElementKey]; ok && id != "" {
		return id, nil
	}
	if id, ok := payload[legacyElementKey]; ok && id != "" {
		return id, nil
	}
	return "", fmt.Errorf("element payload missing identifier")
}

func (e *Element) execute(ctx context.Context, name string, params Params) (*Response, error) {
	if e == nil || e.exec == nil {
		return nil, ErrNoExecutor
	}
	if params == nil {
		params = Params{}
	}
	params["id"] = e.ID
	return e.exec.Execute(ctx, name, params)
}

// Click clicks the element.
func (e *Element) Click(ctx context.Context) error {
	resp, err := e.execute(ctx, CommandElementClick, nil)
	if err != nil {
		return err
	}
	if resp.Failed() {
		return fmt.Errorf("click failed: %s", resp.Message)
	}
	return nil
}

// Clear clears a text input.
func (e *Element) Clear(ctx context.Context) error {
	resp, err := e.execute(ctx, CommandElementClear, nil)
	if err != nil {
		return err
	}
	if resp.Failed() {
		return fmt.Errorf("clear failed: %s", resp.Message)
	}
	return nil
}

// SendKeys types text into the element. The executor is responsible for any
// dialect-specific parameter encoding.
func (e *Element) SendKeys(ctx context.Context, text string) error {
	resp, err := e.execute(ctx, CommandSendKeys, Params{"value": text})
	if err != nil {
		return err
	}
	if resp.Failed() {
		return fmt.Errorf("send keys failed: %s", resp.Message)
	}
	return nil
}

// Text returns the element's visible text.
func (e *Element) Text(ctx context.Context) (string, error) {
	resp, err := e.execute(ctx, CommandElementText, nil)
	if err != nil {
		return "", err
	}
	if resp.Failed() {
		return "", fmt.Errorf("get text failed: %s", resp.Message)
	}
	var text string
	if err := resp.DecodeValue(&text); err != nil {
		return "", err
	}
	return text, nil
}
