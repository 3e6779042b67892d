package agent

import (
	"github.com/odvcencio/agentbridge/pkg/report"
	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

// SessionDescriptor is the remote session issued by the agent. Immutable
// after creation; shared read-only across every component in the process.
type SessionDescriptor struct {
	SessionID     string                 `json:"sessionId"`
	Capabilities  webdriver.Capabilities `json:"capabilities"`
	RemoteAddress string                 `json:"remoteAddress"`
	Dialect       webdriver.Dialect      `json:"dialect"`
}

// CreateSessionRequest is the agent's session-creation payload.
type CreateSessionRequest struct {
	Capabilities   webdriver.Capabilities `json:"capabilities"`
	ReportSettings report.Settings        `json:"reportSettings"`
	DisableReports bool                   `json:"disableReports"`
}

// CommandRequest is the agent's generic command payload.
type CommandRequest struct {
	RequestID  string           `json:"requestId"`
	Name       string           `json:"name"`
	Parameters webdriver.Params `json:"parameters,omitempty"`
}

// ReportBatch is the agent's stash-flush payload.
type ReportBatch struct {
	SessionID string         `json:"sessionId"`
	Entries   []report.Entry `json:"entries"`
}
