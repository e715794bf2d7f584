package localexec

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaydifryah/UpdateBrowsers/internal/remote"
)

// TestStageAndRemove writes a payload to a staging path and cleans it up,
// including the second remove of an already-missing file.
func TestStageAndRemove(t *testing.T) {
	t.Parallel()

	executor := New()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "installer.bin")
	payload := "installer-bytes"

	_, err := executor.Execute(ctx, "localhost", remote.StageFile(path, strings.NewReader(payload), int64(len(payload))))
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, payload, string(contents))

	_, err = executor.Execute(ctx, "localhost", remote.RemoveFile(path))
	require.NoError(t, err)
	require.NoFileExists(t, path)

	// Removing again is not an error.
	_, err = executor.Execute(ctx, "localhost", remote.RemoveFile(path))
	require.NoError(t, err)
}

// TestIsProcessRunning never finds a process that cannot exist.
func TestIsProcessRunning(t *testing.T) {
	t.Parallel()

	running, err := isProcessRunning("definitely-not-a-real-process-name")
	require.NoError(t, err)
	require.False(t, running)
}
