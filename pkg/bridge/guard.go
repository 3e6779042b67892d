package bridge

import (
	"flag"

	"github.com/odvcencio/agentbridge/pkg/report"
)

// Framework identifies a test framework the bridge integrates with.
type Framework string

const (
	// FrameworkAuto (the zero value) enables best-effort detection.
	FrameworkAuto Framework = ""
	// FrameworkNone disables detection entirely.
	FrameworkNone Framework = "none"
	// FrameworkGoTest marks a session driven from `go test`. It requires a
	// companion report.TestListener so the framework owns pass/fail entries.
	FrameworkGoTest Framework = "gotest"
)

// detectFramework resolves the framework for this session. An explicit
// override always wins; detection is a best-effort convenience on top.
func detectFramework(override Framework) Framework {
	if override != FrameworkAuto {
		return override
	}
	// The testing package registers test.* flags before any test runs.
	if flag.Lookup("test.v") != nil {
		return FrameworkGoTest
	}
	return FrameworkNone
}

// runIntegrationGuard performs the one-time framework check at construction.
// When the detected framework requires a companion listener and none is
// registered it returns *IntegrationMissingError; the caller must tear the
// session down. When the listener is present, automatic per-command and
// pass/fail reporting move to the listener.
func runIntegrationGuard(router *Router, override Framework, listener report.TestListener) error {
	framework := detectFramework(override)
	if framework == FrameworkNone {
		return nil
	}
	if listener == nil {
		return &IntegrationMissingError{Framework: framework}
	}
	router.settings.DisableCommandReports = true
	router.settings.DisableAutoTestReports = true
	return nil
}
