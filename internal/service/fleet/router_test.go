package fleet

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaydifryah/UpdateBrowsers/internal/config"
)

func TestIsLocalHost(t *testing.T) {
	t.Parallel()

	require.True(t, isLocalHost("localhost"))
	require.True(t, isLocalHost("LOCALHOST"))
	require.True(t, isLocalHost("127.0.0.1"))
	require.True(t, isLocalHost("::1"))
	require.False(t, isLocalHost("pc-accounting-07"))

	hostname, err := os.Hostname()
	require.NoError(t, err)
	require.True(t, isLocalHost(hostname))
}

// TestNewExecutorLocalOnly builds without SSH credentials when every
// target names this machine.
func TestNewExecutorLocalOnly(t *testing.T) {
	t.Parallel()

	executor, err := newExecutor(config.Default(), []string{"localhost", "127.0.0.1"})
	require.NoError(t, err)
	require.NotNil(t, executor)
}
