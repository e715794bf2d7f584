package report

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
)

func TestRender(t *testing.T) {
	// No t.Parallel: color.NoColor is package state.
	color.NoColor = true

	results := []update.HostResult{
		{
			Host:             "hostA",
			OldVersion:       update.ParseVersion("100.0"),
			InstallerVersion: update.ParseVersion("114.0"),
			NewVersion:       update.ParseVersion("114.0"),
			Outcome:          update.OutcomeUpdated,
		},
		{
			Host:    "hostB",
			Outcome: update.OutcomeUnreachable,
		},
	}

	var out strings.Builder

	require.NoError(t, Render(&out, results))

	rendered := out.String()
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")

	require.Contains(t, lines[0], "ComputerName")
	require.Contains(t, lines[0], "Updated")

	require.Contains(t, lines[1], "hostA")
	require.Contains(t, lines[1], "114.0")
	require.Contains(t, lines[1], "Updated")

	// Unreadable versions render as a placeholder, not as empty cells.
	require.Contains(t, lines[2], "hostB")
	require.Contains(t, lines[2], "-")
	require.Contains(t, lines[2], "Unreachable")

	require.Contains(t, rendered, "2 hosts: 1 updated")
}

func TestSummary(t *testing.T) {
	t.Parallel()

	results := []update.HostResult{
		{Outcome: update.OutcomeUpdated},
		{Outcome: update.OutcomeUpdated},
		{Outcome: update.OutcomeAlreadyCurrent},
		{Outcome: update.OutcomeFailed},
		{Outcome: update.OutcomeUnknown},
	}

	require.Equal(t,
		"5 hosts: 2 updated, 1 current, 0 need restart, 1 failed, 0 unreachable, 1 unknown",
		Summary(results))
}
