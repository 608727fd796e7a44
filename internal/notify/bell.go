package notify

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// errNoTerminal is returned by terminalBell when neither stderr nor stdout is a TTY.
var errNoTerminal = errors.New("no terminal attached for bell")

// terminalBell writes the BEL character to the first attached terminal.
func terminalBell() error {
	for _, f := range []*os.File{os.Stderr, os.Stdout} {
		if term.IsTerminal(int(f.Fd())) {
			_, err := f.WriteString("\a")
			return err
		}
	}
	return errNoTerminal
}
