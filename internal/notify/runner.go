package notify

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"
)

var (
	// ErrSpawn means an external process could not be launched.
	ErrSpawn = errors.New("spawn failed")
	// ErrEncoding means a payload could not be encoded.
	ErrEncoding = errors.New("encoding failed")
)

// Runner launches external processes without waiting for them.
type Runner interface {
	// Start launches name with args. It returns once the process has been
	// spawned; the exit status is never reported back.
	Start(name string, args ...string) error
}

// ExecRunner implements Runner with os/exec. Started processes are reaped in
// a background goroutine so they never linger as zombies.
type ExecRunner struct {
	Logger logrus.FieldLogger
}

// Start implements Runner.
func (r ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	prepareCommand(cmd, name, args)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSpawn, name, err)
	}

	go func() {
		if err := cmd.Wait(); err != nil && r.Logger != nil {
			r.Logger.WithError(err).WithField("command", name).Debug("Notification process exited with error")
		}
	}()
	return nil
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
