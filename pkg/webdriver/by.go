package webdriver

import (
	"fmt"
	"strings"
)

// Strategy is a locator strategy name.
type Strategy string

const (
	ByCSS       Strategy = "css selector"
	ByXPath     Strategy = "xpath"
	ByID        Strategy = "id"
	ByName      Strategy = "name"
	ByTagName   Strategy = "tag name"
	ByClassName Strategy = "class name"
	ByLinkText  Strategy = "link text"
)

var knownStrategies = map[Strategy]struct{}{
	ByCSS: {}, ByXPath: {}, ByID: {}, ByName: {},
	ByTagName: {}, ByClassName: {}, ByLinkText: {},
}

// By locates an element by strategy and selector value.
type By struct {
	Strategy Strategy
	Value    string
}

// Validate checks the locator before it is sent anywhere.
func (b By) Validate() error {
	if _, ok := knownStrategies[b.Strategy]; !ok {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidLocator, b.Strategy)
	}
	if strings.TrimSpace(b.Value) == "" {
		return fmt.Errorf("%w: empty selector", ErrInvalidLocator)
	}
	return nil
}

func (b By) String() string {
	return fmt.Sprintf("%s=%s", b.Strategy, b.Value)
}
