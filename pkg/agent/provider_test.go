package agent_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/agentbridge/pkg/agent"
	"github.com/odvcencio/agentbridge/pkg/agenttest"
	"github.com/odvcencio/agentbridge/pkg/config"
	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

func TestProviderAcquireReusesSession(t *testing.T) {
	fake := agenttest.NewServer(webdriver.DialectW3C)
	server := httptest.NewServer(fake.Handler())
	defer server.Close()

	provider := agent.NewSessionProvider(nil)
	opts := agent.AcquireOptions{RemoteAddress: server.URL, Token: "t"}

	first, err := provider.Acquire(context.Background(), opts)
	require.NoError(t, err)
	second, err := provider.Acquire(context.Background(), opts)
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated acquisition returns the same descriptor")
	assert.Equal(t, 1, fake.SessionCreateCount(), "only one remote negotiation happens")
}

func TestProviderCurrentAfterAcquire(t *testing.T) {
	fake := agenttest.NewServer(webdriver.DialectLegacy)
	server := httptest.NewServer(fake.Handler())
	defer server.Close()

	provider := agent.NewSessionProvider(nil)

	_, err := provider.Current()
	assert.ErrorIs(t, err, agent.ErrNoSession)

	acquired, err := provider.Acquire(context.Background(), agent.AcquireOptions{RemoteAddress: server.URL})
	require.NoError(t, err)

	current, err := provider.Current()
	require.NoError(t, err)
	assert.Same(t, acquired, current)
}

func TestProviderDistinctTargetsGetDistinctSessions(t *testing.T) {
	fakeA := agenttest.NewServer(webdriver.DialectW3C)
	serverA := httptest.NewServer(fakeA.Handler())
	defer serverA.Close()
	fakeB := agenttest.NewServer(webdriver.DialectW3C)
	serverB := httptest.NewServer(fakeB.Handler())
	defer serverB.Close()

	provider := agent.NewSessionProvider(nil)

	a, err := provider.Acquire(context.Background(), agent.AcquireOptions{RemoteAddress: serverA.URL})
	require.NoError(t, err)
	b, err := provider.Acquire(context.Background(), agent.AcquireOptions{RemoteAddress: serverB.URL})
	require.NoError(t, err)

	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestProviderFallsBackToEnvironment(t *testing.T) {
	fake := agenttest.NewServer(webdriver.DialectW3C)
	server := httptest.NewServer(fake.Handler())
	defer server.Close()
	t.Setenv(config.EnvVarRemoteAddress, server.URL)

	provider := agent.NewSessionProvider(nil)
	descriptor, err := provider.Acquire(context.Background(), agent.AcquireOptions{})
	require.NoError(t, err)
	assert.Equal(t, fake.SessionID(), descriptor.SessionID)
}

func TestProviderConnectionErrorIsFatal(t *testing.T) {
	provider := agent.NewSessionProvider(nil)
	_, err := provider.Acquire(context.Background(), agent.AcquireOptions{RemoteAddress: "http://127.0.0.1:1"})

	var connection *agent.ConnectionError
	require.ErrorAs(t, err, &connection)

	_, err = provider.Current()
	assert.ErrorIs(t, err, agent.ErrNoSession, "failed acquisition leaves no current session")
}
