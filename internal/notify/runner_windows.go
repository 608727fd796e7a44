//go:build windows

package notify

import (
	"os/exec"
	"strings"
	"syscall"
)

// prepareCommand hands the rendered script to cmd.exe verbatim. The default
// Windows argument quoting uses backslash escapes that cmd.exe does not
// understand, which would corrupt the already-escaped command.
func prepareCommand(cmd *exec.Cmd, name string, args []string) {
	if !strings.EqualFold(name, "cmd") || len(args) != 2 || !strings.EqualFold(args[0], "/C") {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: `cmd /S /C "` + args[1] + `"`,
	}
}
