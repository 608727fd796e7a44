package wsl

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// HostInterpreter is the Windows-side interpreter reachable from inside WSL.
const HostInterpreter = "powershell.exe"

// rootQuery prints the interpreter's working directory with the
// "Microsoft.PowerShell.Core\FileSystem::" provider prefix stripped.
const rootQuery = "(Get-Location).Path -replace '^.*::', ''"

var (
	// ErrProbeUnresolved means the WSL root path could not be determined.
	ErrProbeUnresolved = errors.New("wsl root path unresolved")
	// ErrEncoding means the probe output was not valid UTF-8.
	ErrEncoding = errors.New("probe output is not valid UTF-8")
)

// Runner runs a command to completion and returns its stdout.
type Runner interface {
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// Output runs name in dir and returns stdout.
func (ExecRunner) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

// Root is the outcome of the WSL root probe.
type Root struct {
	Path     string
	Resolved bool
}

// ProbeRoot asks the host interpreter, started from "/", for its working
// directory. From inside WSL that is the UNC root of the distribution,
// e.g. \\wsl.localhost\Ubuntu.
func ProbeRoot(ctx context.Context, runner Runner) (string, error) {
	out, err := runner.Output(ctx, "/", HostInterpreter, "-c", rootQuery)
	if err != nil {
		return "", fmt.Errorf("%w: running %s: %v", ErrProbeUnresolved, HostInterpreter, err)
	}

	if !utf8.Valid(out) {
		return "", fmt.Errorf("%w: %w", ErrProbeUnresolved, ErrEncoding)
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", fmt.Errorf("%w: empty output from %s", ErrProbeUnresolved, HostInterpreter)
	}
	return root, nil
}
