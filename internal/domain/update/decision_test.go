package update

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDecide walks the classification table rule by rule.
func TestDecide(t *testing.T) {
	t.Parallel()

	old := ParseVersion("100.0.4896.127")
	installer := ParseVersion("114.0.5735.199")
	missing := Version{}

	cases := []struct {
		name string
		obs  Observation
		want Outcome
	}{
		{
			name: "degraded mode wins over everything",
			obs: Observation{
				OldVersion:       old,
				AttemptedInstall: true,
				ProcessRunning:   true,
				Degraded:         true,
			},
			want: OutcomeUnknown,
		},
		{
			name: "already at installer version",
			obs: Observation{
				OldVersion:       installer,
				InstallerVersion: installer,
			},
			want: OutcomeAlreadyCurrent,
		},
		{
			name: "equal versions stay current regardless of other observations",
			obs: Observation{
				OldVersion:         installer,
				InstallerVersion:   installer,
				AttemptedInstall:   true,
				PostInstallVersion: installer,
				ProcessRunning:     true,
			},
			want: OutcomeAlreadyCurrent,
		},
		{
			name: "install brought host to installer version",
			obs: Observation{
				OldVersion:         old,
				InstallerVersion:   installer,
				AttemptedInstall:   true,
				PostInstallVersion: installer,
			},
			want: OutcomeUpdated,
		},
		{
			name: "first install on a host without the product",
			obs: Observation{
				OldVersion:         missing,
				InstallerVersion:   installer,
				AttemptedInstall:   true,
				PostInstallVersion: installer,
			},
			want: OutcomeUpdated,
		},
		{
			name: "old version persists with browser open",
			obs: Observation{
				OldVersion:         old,
				InstallerVersion:   installer,
				AttemptedInstall:   true,
				PostInstallVersion: old,
				ProcessRunning:     true,
			},
			want: OutcomeNeedsRestart,
		},
		{
			name: "old version persists with browser closed",
			obs: Observation{
				OldVersion:         old,
				InstallerVersion:   installer,
				AttemptedInstall:   true,
				PostInstallVersion: old,
				ProcessRunning:     false,
			},
			want: OutcomeFailed,
		},
		{
			name: "host already newer than installer",
			obs: Observation{
				OldVersion:       ParseVersion("120.0"),
				InstallerVersion: installer,
			},
			want: OutcomeAlreadyCurrent,
		},
		{
			name: "post-install version unreadable after attempt",
			obs: Observation{
				OldVersion:         old,
				InstallerVersion:   installer,
				AttemptedInstall:   true,
				PostInstallVersion: missing,
			},
			want: OutcomeFailed,
		},
		{
			name: "unexpected third version after install",
			obs: Observation{
				OldVersion:         old,
				InstallerVersion:   installer,
				AttemptedInstall:   true,
				PostInstallVersion: ParseVersion("113.0.1"),
			},
			want: OutcomeFailed,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Decide(tc.obs))
		})
	}
}

// TestParseProduct accepts both products case-insensitively and rejects the rest.
func TestParseProduct(t *testing.T) {
	t.Parallel()

	p, err := ParseProduct("Chrome")
	require.NoError(t, err)
	require.Equal(t, ProductChrome, p)

	p, err = ParseProduct(" firefox ")
	require.NoError(t, err)
	require.Equal(t, ProductFirefox, p)

	_, err = ParseProduct("safari")
	require.Error(t, err)
}

// TestInstallCommand pins the silent invocation per product.
func TestInstallCommand(t *testing.T) {
	t.Parallel()

	name, args := ProductChrome.InstallCommand(`C:\Windows\Temp\pkg.msi`)
	require.Equal(t, "msiexec", name)
	require.Equal(t, []string{"/i", `C:\Windows\Temp\pkg.msi`, "/qn", "/norestart"}, args)

	name, args = ProductFirefox.InstallCommand(`C:\Windows\Temp\setup.exe`)
	require.Equal(t, `C:\Windows\Temp\setup.exe`, name)
	require.Equal(t, []string{"-ms"}, args)
}
