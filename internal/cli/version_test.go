package cli

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmdRegistration(t *testing.T) {
	t.Parallel()

	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "version" {
			found = true
			assert.Contains(t, cmd.Aliases, "v")
		}
	}
	assert.True(t, found, "version command should be registered")
}

func TestVersionPlain(t *testing.T) {
	stdout, _, err := executeCommand(t, "version", "--plain")

	require.NoError(t, err)
	assert.Contains(t, stdout, "loglady dev\n")
	assert.Contains(t, stdout, "commit: unknown\n")
	assert.Contains(t, stdout, fmt.Sprintf("go: %s\n", runtime.Version()))
	assert.Contains(t, stdout, fmt.Sprintf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH))
}

func TestVersionPretty(t *testing.T) {
	stdout, _, err := executeCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "loglady")
	assert.Contains(t, stdout, runtime.Version())
	assert.Contains(t, stdout, fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
}

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit string
		want   string
	}{
		"short hash kept":   {commit: "abc123", want: "abc123"},
		"long hash trimmed": {commit: "0123456789abcdef", want: "01234567"},
		"unknown kept":      {commit: "unknown", want: "unknown"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateCommit(tt.commit))
		})
	}
}
