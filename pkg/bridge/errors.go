package bridge

import (
	"errors"
	"fmt"

	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

// ErrSessionStopped is returned when a command is routed after teardown.
var ErrSessionStopped = errors.New("bridged session stopped")

// NoSuchElementError replaces the driver model's generic invalid-locator
// failure so callers see a stable error taxonomy.
type NoSuchElementError struct {
	Locator webdriver.By
	Err     error
}

func (e *NoSuchElementError) Error() string {
	return fmt.Sprintf("no such element for locator %s: %v", e.Locator, e.Err)
}

func (e *NoSuchElementError) Unwrap() error { return e.Err }

// IntegrationMissingError means a tracked test framework was detected
// without its companion reporting listener. Fatal at construction.
type IntegrationMissingError struct {
	Framework Framework
}

func (e *IntegrationMissingError) Error() string {
	return fmt.Sprintf("framework %q detected but no companion test listener is registered", e.Framework)
}
