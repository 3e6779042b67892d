package bridge

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/agentbridge/pkg/agent"
	"github.com/odvcencio/agentbridge/pkg/agenttest"
	"github.com/odvcencio/agentbridge/pkg/config"
	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

const elementPayload = `{"element-6066-11e4-a52e-4f735466cecf":"elem-1"}`

type nopListener struct{}

func (nopListener) TestFinished(string, bool) {}

// newTestBridge stands up a fake agent and bridges a driver onto it.
func newTestBridge(t *testing.T, dialect webdriver.Dialect, mutate func(*Options)) (*Driver, *agent.SessionProvider, *agenttest.Server) {
	t.Helper()
	fake := agenttest.NewServer(dialect)
	server := httptest.NewServer(fake.Handler())
	t.Cleanup(server.Close)

	provider := agent.NewSessionProvider(nil)
	opts := Options{
		Options: config.Options{
			RemoteAddress: server.URL,
			Capabilities:  webdriver.Capabilities{"browserName": "chrome"},
		},
		Framework: FrameworkNone,
	}
	if mutate != nil {
		mutate(&opts)
	}
	driver, err := New(context.Background(), provider, opts)
	require.NoError(t, err)
	return driver, provider, fake
}

func TestNewBridgesOntoRemoteSession(t *testing.T) {
	driver, provider, fake := newTestBridge(t, webdriver.DialectW3C, nil)

	current, err := provider.Current()
	require.NoError(t, err)
	assert.Equal(t, current.SessionID, driver.SessionID(), "local identity equals the remote descriptor's")
	assert.Equal(t, fake.SessionID(), driver.SessionID())
	assert.True(t, driver.Running())

	// The construction-time session create is absorbed, never forwarded.
	assert.Equal(t, 1, fake.SessionCreateCount())
	assert.Equal(t, 0, fake.CommandCount(webdriver.CommandNewSession))
}

func TestNewRequiresProvider(t *testing.T) {
	_, err := New(context.Background(), nil, Options{Framework: FrameworkNone})
	assert.Error(t, err)
}

func TestNewSurfacesNegotiationFailure(t *testing.T) {
	fake := agenttest.NewServer(webdriver.DialectW3C)
	fake.RejectSessions = true
	server := httptest.NewServer(fake.Handler())
	defer server.Close()

	_, err := New(context.Background(), agent.NewSessionProvider(nil), Options{
		Options:   config.Options{RemoteAddress: server.URL},
		Framework: FrameworkNone,
	})

	var negotiation *agent.NegotiationError
	assert.ErrorAs(t, err, &negotiation)
}

func TestFindElement(t *testing.T) {
	driver, _, fake := newTestBridge(t, webdriver.DialectW3C, nil)
	fake.ScriptResponse(webdriver.CommandFindElement, &webdriver.Response{
		Status: 0,
		Value:  json.RawMessage(elementPayload),
	})

	el, err := driver.FindElement(context.Background(), webdriver.By{Strategy: webdriver.ByCSS, Value: "#login"})
	require.NoError(t, err)
	assert.Equal(t, "elem-1", el.ID)

	calls := fake.Commands()
	require.Len(t, calls, 1)
	assert.Equal(t, webdriver.CommandFindElement, calls[0].Name)
	assert.Equal(t, "css selector", calls[0].Parameters["using"])
	assert.Equal(t, "#login", calls[0].Parameters["value"])
}

func TestFindElementInvalidLocator(t *testing.T) {
	driver, _, fake := newTestBridge(t, webdriver.DialectW3C, nil)

	_, err := driver.FindElement(context.Background(), webdriver.By{Strategy: "bogus", Value: "#x"})

	var noSuch *NoSuchElementError
	require.ErrorAs(t, err, &noSuch, "generic invalid-locator failure is translated")
	assert.ErrorIs(t, err, webdriver.ErrInvalidLocator)
	assert.Equal(t, 0, fake.CommandCount(webdriver.CommandFindElement), "invalid locators never reach the agent")
}

func TestFindElementAgentFailure(t *testing.T) {
	driver, _, fake := newTestBridge(t, webdriver.DialectW3C, nil)
	fake.ScriptResponse(webdriver.CommandFindElement, &webdriver.Response{
		Status:  7,
		Message: "no element matched the selector",
	})

	_, err := driver.FindElement(context.Background(), webdriver.By{Strategy: webdriver.ByCSS, Value: "#missing"})

	var noSuch *NoSuchElementError
	require.ErrorAs(t, err, &noSuch)
	assert.Contains(t, noSuch.Error(), "no element matched")
}

func TestNavigateAndTitle(t *testing.T) {
	driver, _, fake := newTestBridge(t, webdriver.DialectW3C, nil)
	fake.ScriptResponse(webdriver.CommandGetTitle, &webdriver.Response{
		Status: 0,
		Value:  json.RawMessage(`"Example Domain"`),
	})

	require.NoError(t, driver.Navigate(context.Background(), "https://example.com"))
	title, err := driver.Title(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Example Domain", title)

	assert.Equal(t, 1, fake.CommandCount(webdriver.CommandNavigateTo))
	assert.Equal(t, 1, fake.CommandCount(webdriver.CommandGetTitle))
}

func TestAddonsExecute(t *testing.T) {
	driver, _, fake := newTestBridge(t, webdriver.DialectW3C, nil)

	resp, err := driver.Addons().Execute(context.Background(), AddonAction{
		GUID:       "addon-1",
		ClassName:  "io.agentbridge.actions.ClearCart",
		Parameters: map[string]any{"storeId": "us-1"},
	})
	require.NoError(t, err)
	assert.False(t, resp.Failed())

	calls := fake.Commands()
	require.Len(t, calls, 1)
	assert.Equal(t, webdriver.CommandProprietary, calls[0].Name)
	assert.Equal(t, "addon-1", calls[0].Parameters["guid"])
}

func TestAddonsExecuteRequiresIdentity(t *testing.T) {
	driver, _, _ := newTestBridge(t, webdriver.DialectW3C, nil)

	_, err := driver.Addons().Execute(context.Background(), AddonAction{})
	assert.Error(t, err)
}

func TestReportedStepsFlushInOrder(t *testing.T) {
	driver, _, fake := newTestBridge(t, webdriver.DialectW3C, func(o *Options) {
		o.Report.DisableCommandReports = true
	})

	driver.Report().Step("open login page", true, "")
	driver.Report().Step("enter credentials", true, "")
	driver.Report().Step("submit", false, "button disabled")
	require.NoError(t, driver.Stop(context.Background()))

	entries := fake.ReportedEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "open login page", entries[0].Description)
	assert.Equal(t, "enter credentials", entries[1].Description)
	assert.Equal(t, "submit", entries[2].Description)
	assert.False(t, entries[2].Passed)
}

func TestDisableReportsDropsEverything(t *testing.T) {
	driver, _, fake := newTestBridge(t, webdriver.DialectW3C, func(o *Options) {
		o.DisableReports = true
	})

	driver.Report().Step("never recorded", true, "")
	require.NoError(t, driver.Navigate(context.Background(), "https://example.com"))
	require.NoError(t, driver.Stop(context.Background()))

	assert.Empty(t, fake.ReportBatches())
	assert.True(t, driver.Report().Disabled())
}
