package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFull(t *testing.T) {
	t.Parallel()

	full := Full()
	require.True(t, strings.HasPrefix(full, Version))
	require.Contains(t, full, "commit "+Commit)
	require.Contains(t, full, "built "+BuildTime)
}

func TestShort(t *testing.T) {
	t.Parallel()

	require.Equal(t, Version, Short())
}
