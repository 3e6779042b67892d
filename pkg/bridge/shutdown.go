package bridge

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/odvcencio/agentbridge/pkg/logging"
)

// Shutdown states. The only legal path is Active -> Stopping -> Stopped.
const (
	stateActive int32 = iota
	stateStopping
	stateStopped
)

// Coordinator drives session teardown exactly once, no matter how many
// callers or cleanup paths trigger it.
type Coordinator struct {
	log     *logging.Logger
	router  *Router
	running *atomic.Bool
	state   atomic.Int32
}

func newCoordinator(router *Router, running *atomic.Bool, log *logging.Logger) *Coordinator {
	return &Coordinator{
		log:     log.WithSession(router.SessionID()),
		router:  router,
		running: running,
	}
}

// Stop performs teardown: flush the report stash (best effort), lower the
// running flag, then terminate the remote session. Safe to call from
// multiple paths; only the first caller does the work.
func (c *Coordinator) Stop(ctx context.Context) error {
	if !c.state.CompareAndSwap(stateActive, stateStopping) {
		c.log.Info("session already stopping or stopped; ignoring")
		return nil
	}
	defer c.state.Store(stateStopped)

	if err := c.router.flush(ctx); err != nil {
		c.log.Warn("report stash flush failed", "error", err)
	}
	c.running.Store(false)

	if err := c.router.terminate(ctx); err != nil {
		c.log.Warn("native session termination failed", "error", err)
		return err
	}
	c.log.Info("bridged session stopped")
	return nil
}

// Stopped reports whether teardown has completed.
func (c *Coordinator) Stopped() bool {
	return c.state.Load() == stateStopped
}

// Handle is the disposable resource representing "this session must be
// cleaned up". Release is idempotent and is the single path into teardown.
type Handle struct {
	coordinator *Coordinator
}

// Release triggers teardown. Errors from the underlying stop are discarded;
// process-exit cleanup has nowhere to report them.
func (h *Handle) Release() {
	if h == nil || h.coordinator == nil {
		return
	}
	_ = h.coordinator.Stop(context.Background())
}

// Process-exit safety net. Scoped release (defer driver.Quit()) is the
// primary path; ReleaseAll exists for mains and signal handlers so an
// unstopped session does not leak a remote browser.
var exitCleanup struct {
	mu      sync.Mutex
	handles []*Handle
}

func registerHandle(h *Handle) {
	exitCleanup.mu.Lock()
	defer exitCleanup.mu.Unlock()
	exitCleanup.handles = append(exitCleanup.handles, h)
}

// ReleaseAll releases every registered shutdown handle. Idempotent.
func ReleaseAll() {
	exitCleanup.mu.Lock()
	handles := exitCleanup.handles
	exitCleanup.handles = nil
	exitCleanup.mu.Unlock()
	for _, h := range handles {
		h.Release()
	}
}
