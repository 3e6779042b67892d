package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

const defaultTimeout = 30 * time.Second

// Client talks to the agent's HTTP API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates an agent client for the given endpoint. The token may be
// empty when the agent runs without authentication.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// BaseURL returns the configured agent endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateSession asks the agent for a browser session. Transport failures map
// to *ConnectionError, capability rejections to *NegotiationError.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionDescriptor, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode session request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &ConnectionError{Endpoint: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NegotiationError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	var descriptor SessionDescriptor
	if err := json.NewDecoder(resp.Body).Decode(&descriptor); err != nil {
		return nil, &ConnectionError{Endpoint: c.baseURL, Err: fmt.Errorf("decode session response: %w", err)}
	}
	if descriptor.SessionID == "" {
		return nil, &NegotiationError{StatusCode: resp.StatusCode, Message: "agent returned empty session id"}
	}
	if !descriptor.Dialect.Valid() {
		descriptor.Dialect = webdriver.DialectLegacy
	}
	return &descriptor, nil
}

// ExecuteCommand forwards one command envelope to the agent. Driver-level
// failures come back inside the response; only plumbing failures error.
func (c *Client) ExecuteCommand(ctx context.Context, sessionID string, req CommandRequest) (*webdriver.Response, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	var resp webdriver.Response
	path := fmt.Sprintf("/v1/sessions/%s/command", sessionID)
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, &TransportError{Op: req.Name, Err: err}
	}
	if resp.SessionID == "" {
		resp.SessionID = sessionID
	}
	return &resp, nil
}

// SubmitReports transmits a batch of buffered report entries.
func (c *Client) SubmitReports(ctx context.Context, batch ReportBatch) error {
	path := fmt.Sprintf("/v1/sessions/%s/reports", batch.SessionID)
	if err := c.doJSON(ctx, http.MethodPost, path, batch, nil); err != nil {
		return &TransportError{Op: "submitReports", Err: err}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("agent returned status %d: %s", resp.StatusCode, readErrorMessage(resp.Body))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no error detail"
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(data))
}
