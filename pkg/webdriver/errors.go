package webdriver

import "errors"

var (
	ErrSessionClosed  = errors.New("webdriver session closed")
	ErrInvalidLocator = errors.New("invalid locator")
	ErrUnknownCommand = errors.New("unknown webdriver command")
	ErrNoExecutor     = errors.New("no command executor configured")
)
