package util

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/ariel-frischer/tasknotify/internal/build"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests that modify the global build.Version variable cannot run in parallel.

func TestVersionGlobalVariable(t *testing.T) {
	t.Run("IsDevBuild", func(t *testing.T) {
		tests := map[string]struct {
			version string
			want    bool
		}{
			"dev version": {
				version: "dev",
				want:    true,
			},
			"release version": {
				version: "v0.3.0",
				want:    false,
			},
		}

		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				origVersion := build.Version
				build.Version = tt.version
				defer func() { build.Version = origVersion }()

				assert.Equal(t, tt.want, build.IsDevBuild())
			})
		}
	})

	t.Run("plain output reflects ldflags values", func(t *testing.T) {
		origVersion, origCommit := build.Version, build.Commit
		build.Version, build.Commit = "v0.3.0", "0123456789abcdef"
		defer func() { build.Version, build.Commit = origVersion, origCommit }()

		var out bytes.Buffer
		printPlainVersion(&out)

		assert.Contains(t, out.String(), "version: v0.3.0\n")
		assert.Contains(t, out.String(), "commit: 01234567\n")
		assert.Contains(t, out.String(), "go: "+runtime.Version())
		assert.Contains(t, out.String(), "notifier: ")
	})
}

func TestPrettyVersion(t *testing.T) {
	var out bytes.Buffer
	printPrettyVersion(&out)

	assert.Contains(t, out.String(), "tasknotify")
	assert.Contains(t, out.String(), SourceURL)
	assert.Contains(t, out.String(), runtime.GOOS+"/"+runtime.GOARCH)
}

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit string
		want   string
	}{
		"long hash":  {commit: "0123456789abcdef", want: "01234567"},
		"short hash": {commit: "abc", want: "abc"},
		"unknown":    {commit: "unknown", want: "unknown"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateCommit(tt.commit))
		})
	}
}

func TestRegister(t *testing.T) {
	root := &cobra.Command{Use: "test"}
	require.NotPanics(t, func() { Register(root) })

	cmd, _, err := root.Find([]string{"version"})
	require.NoError(t, err)
	assert.Equal(t, "version", cmd.Name())
	assert.Contains(t, cmd.Aliases, "v")
	assert.NotNil(t, cmd.Flags().Lookup("plain"))
}
