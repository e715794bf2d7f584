package selfupdate

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseChecksum(t *testing.T) {
	t.Parallel()

	sum := sha512.Sum512([]byte("binary-bytes"))
	digest := hex.EncodeToString(sum[:])

	tests := []struct {
		name     string
		contents string
		wantErr  bool
	}{
		{
			name:     "sha512sum_format",
			contents: digest + "  browser-updater\n",
		},
		{
			name:     "bare_digest",
			contents: digest,
		},
		{
			name:     "empty",
			contents: "   \n",
			wantErr:  true,
		},
		{
			name:     "not_hex",
			contents: "zz" + strings.Repeat("00", 63),
			wantErr:  true,
		},
		{
			name:     "truncated",
			contents: digest[:32],
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			checksum, err := parseChecksum(tt.contents)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, sum[:], checksum)
		})
	}
}

func TestRunRejectsEmptyURL(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Run(context.Background(), nil), errEmptyURL)
	require.ErrorIs(t, Run(context.Background(), &Options{}), errEmptyURL)
}
