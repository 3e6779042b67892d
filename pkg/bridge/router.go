package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/odvcencio/agentbridge/pkg/agent"
	"github.com/odvcencio/agentbridge/pkg/logging"
	"github.com/odvcencio/agentbridge/pkg/report"
	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

// Router is the command transport for a bridged session. Every command the
// driver issues after construction flows through Execute; the router absorbs
// session creation, rewrites legacy parameters, forwards envelopes to the
// agent, and records reporting side effects.
type Router struct {
	log        *logging.Logger
	client     *agent.Client
	descriptor *agent.SessionDescriptor
	commands   webdriver.DispatchTable
	legacy     bool

	stash    *report.Stash
	settings report.Settings
	running  *atomic.Bool
}

func newRouter(client *agent.Client, descriptor *agent.SessionDescriptor, settings report.Settings, running *atomic.Bool, log *logging.Logger) *Router {
	return &Router{
		log:        log.WithSession(descriptor.SessionID),
		client:     client,
		descriptor: descriptor,
		commands:   dispatchFor(descriptor),
		legacy:     IsLegacy(descriptor),
		stash:      report.NewStash(),
		settings:   settings,
		running:    running,
	}
}

// SessionID returns the bridged session identifier.
func (r *Router) SessionID() string {
	return r.descriptor.SessionID
}

// Execute implements webdriver.Executor.
func (r *Router) Execute(ctx context.Context, name string, params webdriver.Params) (*webdriver.Response, error) {
	// The driver model always tries to create a session on construction.
	// The session already exists agent-side, so the attempt is absorbed.
	if name == webdriver.CommandNewSession {
		metricCreatesAbsorbed.Inc()
		r.log.Debug("absorbed session-creation command")
		return webdriver.SyntheticSuccess(r.descriptor.SessionID), nil
	}
	if !r.running.Load() {
		return nil, ErrSessionStopped
	}
	if _, ok := r.commands.Lookup(name); !ok {
		return nil, fmt.Errorf("%w: %s", webdriver.ErrUnknownCommand, name)
	}
	if r.legacy {
		params = rewriteLegacyParams(name, params)
	}

	resp, err := r.client.ExecuteCommand(ctx, r.descriptor.SessionID, agent.CommandRequest{
		Name:       name,
		Parameters: params,
	})
	if err != nil {
		return nil, err
	}
	metricCommandsRouted.Inc()
	r.recordCommand(name, resp)
	return resp, nil
}

// Report implements report.Sink.
func (r *Router) Report(entry report.Entry) {
	if r.settings.DisableReports {
		return
	}
	r.stash.Append(entry)
}

// recordCommand buffers an automatic per-command entry unless the session or
// the framework integration disabled them.
func (r *Router) recordCommand(name string, resp *webdriver.Response) {
	if r.settings.DisableReports || r.settings.DisableCommandReports {
		return
	}
	entry := report.NewEntry(report.KindCommand, name, !resp.Failed())
	entry.Message = resp.Message
	r.stash.Append(entry)
}

// flush drains the stash and transmits pending entries. Called exactly once
// by the shutdown coordinator.
func (r *Router) flush(ctx context.Context) error {
	metricStashFlushes.Inc()
	entries := r.stash.Drain()
	if len(entries) == 0 {
		return nil
	}
	if r.settings.DisableReports {
		return nil
	}
	err := r.client.SubmitReports(ctx, agent.ReportBatch{
		SessionID: r.descriptor.SessionID,
		Entries:   entries,
	})
	if err != nil {
		return err
	}
	metricStashEntriesFlushed.Add(float64(len(entries)))
	r.log.Debug("report stash flushed", slog.Int("entries", len(entries)))
	return nil
}

// terminate issues the native quit against the agent. Runs after the running
// flag is lowered; it is the one command allowed past it.
func (r *Router) terminate(ctx context.Context) error {
	_, err := r.client.ExecuteCommand(ctx, r.descriptor.SessionID, agent.CommandRequest{
		Name: webdriver.CommandQuit,
	})
	return err
}
