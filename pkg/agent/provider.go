package agent

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/odvcencio/agentbridge/pkg/config"
	"github.com/odvcencio/agentbridge/pkg/logging"
	"github.com/odvcencio/agentbridge/pkg/report"
	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

// ErrNoSession is returned by Current before any successful acquisition.
var ErrNoSession = errors.New("no agent session acquired yet")

// AcquireOptions configures a session acquisition. Empty address and token
// fall back to environment defaults.
type AcquireOptions struct {
	RemoteAddress  string
	Token          string
	Capabilities   webdriver.Capabilities
	ReportSettings report.Settings
	DisableReports bool
}

type providerKey struct {
	endpoint string
	token    string
}

type acquisition struct {
	descriptor *SessionDescriptor
	client     *Client
}

// SessionProvider hands out agent sessions, guaranteeing at most one remote
// session per (endpoint, token) pair for the provider's lifetime. One
// provider per logical run; whoever composes the driver owns it.
type SessionProvider struct {
	log *logging.Logger

	mu       sync.Mutex
	sessions map[providerKey]*acquisition
	current  *acquisition
}

// NewSessionProvider creates a provider. A nil logger is replaced with a
// no-op logger.
func NewSessionProvider(log *logging.Logger) *SessionProvider {
	if log == nil {
		log = logging.NewNop()
	}
	return &SessionProvider{
		log:      log,
		sessions: make(map[providerKey]*acquisition),
	}
}

// Acquire returns the session for the resolved (endpoint, token) pair,
// creating it on first use. Repeated calls with the same target return the
// same descriptor pointer.
func (p *SessionProvider) Acquire(ctx context.Context, opts AcquireOptions) (*SessionDescriptor, error) {
	endpoint := opts.RemoteAddress
	if endpoint == "" {
		endpoint = config.EnvRemoteAddress()
	}
	token := opts.Token
	if token == "" {
		token = config.EnvToken()
	}
	key := providerKey{endpoint: endpoint, token: token}

	p.mu.Lock()
	defer p.mu.Unlock()

	if acq, ok := p.sessions[key]; ok {
		p.current = acq
		return acq.descriptor, nil
	}

	client := NewClient(endpoint, token)
	descriptor, err := client.CreateSession(ctx, CreateSessionRequest{
		Capabilities:   opts.Capabilities,
		ReportSettings: opts.ReportSettings,
		DisableReports: opts.DisableReports,
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("agent session acquired",
		slog.String("session_id", descriptor.SessionID),
		slog.String("endpoint", endpoint),
		slog.String("dialect", string(descriptor.Dialect)))

	acq := &acquisition{descriptor: descriptor, client: client}
	p.sessions[key] = acq
	p.current = acq
	return descriptor, nil
}

// Current returns the most recently acquired descriptor.
func (p *SessionProvider) Current() (*SessionDescriptor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, ErrNoSession
	}
	return p.current.descriptor, nil
}

// Client returns the agent client bound to the current acquisition.
func (p *SessionProvider) Client() (*Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, ErrNoSession
	}
	return p.current.client, nil
}
