// Package shared tests exit code mapping and config flag handling.
// Related: internal/cli/shared/constants.go, internal/cli/shared/app.go
// Tags: cli, shared, exit-codes, config

package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil is success": {
			err:  nil,
			want: ExitSuccess,
		},
		"plain error is failure": {
			err:  errors.New("boom"),
			want: ExitFailure,
		},
		"exit error keeps code": {
			err:  NewExitError(ExitMissingDependency),
			want: ExitMissingDependency,
		},
		"wrapped exit error": {
			err:  fmt.Errorf("running task: %w", NewExitError(42)),
			want: 42,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestWithExitCode(t *testing.T) {
	t.Parallel()

	cause := errors.New("unknown project \"web\"")
	err := WithExitCode(cause, ExitInvalidArguments)

	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	assert.Equal(t, cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsSilent(err))
}

func TestIsSilent(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSilent(NewExitError(2)))
	assert.False(t, IsSilent(errors.New("x")))
	assert.False(t, IsSilent(nil))
	assert.Equal(t, "exit code 2", NewExitError(2).Error())
}

func TestConfigOptions(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setup       func(cmd *cobra.Command)
		wantPath    string
		wantEnvFile string
	}{
		"no flags defined": {
			setup:    func(*cobra.Command) {},
			wantPath: DefaultLocalConfig,
		},
		"flags set": {
			setup: func(cmd *cobra.Command) {
				cmd.Flags().String("config", DefaultLocalConfig, "")
				cmd.Flags().String("env-file", "", "")
				_ = cmd.Flags().Set("config", "custom.json")
				_ = cmd.Flags().Set("env-file", ".env.local")
			},
			wantPath:    "custom.json",
			wantEnvFile: ".env.local",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := &cobra.Command{Use: "test"}
			tt.setup(cmd)

			opts := ConfigOptions(cmd)
			assert.Equal(t, tt.wantPath, opts.ConfigPath)
			assert.Equal(t, tt.wantEnvFile, opts.EnvFile)
		})
	}
}
