package webdriver

import "net/http"

// Command names routed through an Executor. Names are stable identifiers,
// not wire paths; the dialect dispatch table maps them to endpoints.
const (
	CommandNewSession    = "newSession"
	CommandQuit          = "quit"
	CommandNavigateTo    = "get"
	CommandGetCurrentURL = "getCurrentUrl"
	CommandGetTitle      = "getTitle"
	CommandFindElement   = "findElement"
	CommandElementClick  = "clickElement"
	CommandElementClear  = "clearElement"
	CommandSendKeys      = "sendKeysToElement"
	CommandElementText   = "getElementText"
	CommandExecuteScript = "executeScript"
	CommandScreenshot    = "screenshot"
	CommandProprietary   = "proprietaryAction"
)

// Dialect identifies the negotiated wire-protocol variant.
type Dialect string

const (
	DialectLegacy Dialect = "legacy"
	DialectW3C    Dialect = "w3c"
)

// Valid reports whether the dialect is one of the known variants.
func (d Dialect) Valid() bool {
	return d == DialectLegacy || d == DialectW3C
}

// CommandSpec describes how a command is encoded on the wire.
type CommandSpec struct {
	Method string
	Path   string
}

// DispatchTable maps command names to their wire encoding for one dialect.
type DispatchTable map[string]CommandSpec

// Lookup returns the spec for a command name.
func (t DispatchTable) Lookup(name string) (CommandSpec, bool) {
	spec, ok := t[name]
	return spec, ok
}

var legacyTable = DispatchTable{
	CommandNewSession:    {http.MethodPost, "/session"},
	CommandQuit:          {http.MethodDelete, "/session/:sessionId"},
	CommandNavigateTo:    {http.MethodPost, "/session/:sessionId/url"},
	CommandGetCurrentURL: {http.MethodGet, "/session/:sessionId/url"},
	CommandGetTitle:      {http.MethodGet, "/session/:sessionId/title"},
	CommandFindElement:   {http.MethodPost, "/session/:sessionId/element"},
	CommandElementClick:  {http.MethodPost, "/session/:sessionId/element/:id/click"},
	CommandElementClear:  {http.MethodPost, "/session/:sessionId/element/:id/clear"},
	CommandSendKeys:      {http.MethodPost, "/session/:sessionId/element/:id/value"},
	CommandElementText:   {http.MethodGet, "/session/:sessionId/element/:id/text"},
	CommandExecuteScript: {http.MethodPost, "/session/:sessionId/execute"},
	CommandScreenshot:    {http.MethodGet, "/session/:sessionId/screenshot"},
	CommandProprietary:   {http.MethodPost, "/session/:sessionId/action"},
}

var w3cTable = DispatchTable{
	CommandNewSession:    {http.MethodPost, "/session"},
	CommandQuit:          {http.MethodDelete, "/session/:sessionId"},
	CommandNavigateTo:    {http.MethodPost, "/session/:sessionId/url"},
	CommandGetCurrentURL: {http.MethodGet, "/session/:sessionId/url"},
	CommandGetTitle:      {http.MethodGet, "/session/:sessionId/title"},
	CommandFindElement:   {http.MethodPost, "/session/:sessionId/element"},
	CommandElementClick:  {http.MethodPost, "/session/:sessionId/element/:id/click"},
	CommandElementClear:  {http.MethodPost, "/session/:sessionId/element/:id/clear"},
	CommandSendKeys:      {http.MethodPost, "/session/:sessionId/element/:id/value"},
	CommandElementText:   {http.MethodGet, "/session/:sessionId/element/:id/text"},
	CommandExecuteScript: {http.MethodPost, "/session/:sessionId/execute/sync"},
	CommandScreenshot:    {http.MethodGet, "/session/:sessionId/screenshot"},
	CommandProprietary:   {http.MethodPost, "/session/:sessionId/action"},
}

// CommandsFor returns the dispatch table for the given dialect. The returned
// table is shared and must not be mutated.
func CommandsFor(dialect Dialect) DispatchTable {
	if dialect == DialectW3C {
		return w3cTable
	}
	return legacyTable
}
