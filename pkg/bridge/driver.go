package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/odvcencio/agentbridge/pkg/agent"
	"github.com/odvcencio/agentbridge/pkg/config"
	"github.com/odvcencio/agentbridge/pkg/logging"
	"github.com/odvcencio/agentbridge/pkg/report"
	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

// Options configures a bridged driver.
type Options struct {
	config.Options

	// Framework overrides auto-detection of the calling test framework.
	Framework Framework

	// TestListener is the companion reporting hook required when a tracked
	// framework drives the session.
	TestListener report.TestListener

	// Logger defaults to a no-op logger when nil.
	Logger *logging.Logger
}

// Driver is the public bridged driver facade. It looks like an ordinary
// driver handle, but its session identity and command dispatch come from the
// agent-issued remote session, and every command flows through the Router.
type Driver struct {
	log         *logging.Logger
	descriptor  *agent.SessionDescriptor
	router      *Router
	coordinator *Coordinator
	handle      *Handle
	running     *atomic.Bool
	reporter    *report.Reporter
}

// New acquires (or reuses) the provider's remote session and bridges a
// driver onto it. Construction failures from the integration guard tear the
// remote session down before returning so nothing is left running.
func New(ctx context.Context, provider *agent.SessionProvider, opts Options) (*Driver, error) {
	if provider == nil {
		return nil, errors.New("session provider is required")
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}

	settings := opts.Report
	settings.DisableReports = settings.DisableReports || opts.DisableReports

	descriptor, err := provider.Acquire(ctx, agent.AcquireOptions{
		RemoteAddress:  opts.RemoteAddress,
		Token:          opts.Token,
		Capabilities:   opts.Capabilities,
		ReportSettings: settings,
		DisableReports: settings.DisableReports,
	})
	if err != nil {
		return nil, err
	}
	client, err := provider.Client()
	if err != nil {
		return nil, err
	}

	running := &atomic.Bool{}
	running.Store(true)
	router := newRouter(client, descriptor, settings, running, log)

	// The driver model issues a session create on construction; route it so
	// the router absorbs it and hands back the bridged identity.
	resp, err := router.Execute(ctx, webdriver.CommandNewSession, webdriver.Params{
		"capabilities": descriptor.Capabilities,
	})
	if err != nil {
		return nil, err
	}
	if resp.SessionID != descriptor.SessionID {
		return nil, fmt.Errorf("bridged session identity mismatch: %s != %s", resp.SessionID, descriptor.SessionID)
	}

	coordinator := newCoordinator(router, running, log)
	handle := &Handle{coordinator: coordinator}
	registerHandle(handle)

	if err := runIntegrationGuard(router, opts.Framework, opts.TestListener); err != nil {
		entry := report.NewEntry(report.KindSession, "framework integration check failed", false)
		entry.Message = err.Error()
		router.Report(entry)
		if stopErr := coordinator.Stop(ctx); stopErr != nil {
			log.Warn("teardown after failed integration check", "error", stopErr)
		}
		return nil, err
	}

	metricSessionsBridged.Inc()
	log.Info("driver bridged onto agent session",
		slog.String("session_id", descriptor.SessionID),
		slog.String("dialect", string(descriptor.Dialect)))

	return &Driver{
		log:         log.WithSession(descriptor.SessionID),
		descriptor:  descriptor,
		router:      router,
		coordinator: coordinator,
		handle:      handle,
		running:     running,
		reporter:    report.NewReporter(router, settings.DisableReports),
	}, nil
}

// SessionID returns the remote session identifier this driver is bridged to.
func (d *Driver) SessionID() string {
	return d.descriptor.SessionID
}

// Running reports whether the session is still active.
func (d *Driver) Running() bool {
	return d.running.Load()
}

// Handle returns the shutdown handle for scoped-release wiring.
func (d *Driver) Handle() *Handle {
	return d.handle
}

// Report returns the reporter bound to this session's router.
func (d *Driver) Report() *report.Reporter {
	return d.reporter
}

// Addons returns the proprietary-action helper for this session.
func (d *Driver) Addons() *AddonHelper {
	return &AddonHelper{router: d.router}
}

// FindElement locates an element. Invalid locators surface as
// *NoSuchElementError rather than the driver model's generic failure.
func (d *Driver) FindElement(ctx context.Context, by webdriver.By) (*webdriver.Element, error) {
	if err := by.Validate(); err != nil {
		d.log.Error("element lookup failed", slog.String("locator", by.String()), "error", err)
		return nil, &NoSuchElementError{Locator: by, Err: err}
	}
	resp, err := d.router.Execute(ctx, webdriver.CommandFindElement, webdriver.Params{
		"using": string(by.Strategy),
		"value": by.Value,
	})
	if err != nil {
		return nil, err
	}
	if resp.Failed() {
		d.log.Error("element lookup failed", slog.String("locator", by.String()), slog.String("message", resp.Message))
		return nil, &NoSuchElementError{Locator: by, Err: errors.New(resp.Message)}
	}
	id, err := webdriver.DecodeElementID(resp.Value)
	if err != nil {
		return nil, err
	}
	return webdriver.NewElement(id, d.descriptor.SessionID, d.router), nil
}

// Navigate loads the given URL.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	resp, err := d.router.Execute(ctx, webdriver.CommandNavigateTo, webdriver.Params{"url": url})
	if err != nil {
		return err
	}
	if resp.Failed() {
		return fmt.Errorf("navigate failed: %s", resp.Message)
	}
	return nil
}

// Title returns the current page title.
func (d *Driver) Title(ctx context.Context) (string, error) {
	resp, err := d.router.Execute(ctx, webdriver.CommandGetTitle, nil)
	if err != nil {
		return "", err
	}
	if resp.Failed() {
		return "", fmt.Errorf("get title failed: %s", resp.Message)
	}
	var title string
	if err := resp.DecodeValue(&title); err != nil {
		return "", err
	}
	return title, nil
}

// Stop tears the session down. Idempotent.
func (d *Driver) Stop(ctx context.Context) error {
	return d.coordinator.Stop(ctx)
}

// Quit is the conventional driver alias for Stop, guarded by the running
// flag so a second call is a no-op.
func (d *Driver) Quit(ctx context.Context) error {
	if !d.running.Load() {
		d.log.Info("quit called on stopped session; ignoring")
		return nil
	}
	return d.Stop(ctx)
}
