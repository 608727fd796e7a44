//go:build !windows

package notify

import "os/exec"

func prepareCommand(*exec.Cmd, string, []string) {}
