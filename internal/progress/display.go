package progress

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// ErrEmptyMessage is returned by Start when there is nothing to display.
var ErrEmptyMessage = errors.New("progress message cannot be empty")

// Display renders one step at a time: a spinner on a terminal, a plain line
// otherwise.
type Display struct {
	mu           sync.Mutex
	capabilities TerminalCapabilities
	symbols      Symbols
	out          io.Writer
	spinner      *spinner.Spinner
	started      time.Time
	now          func() time.Time
}

// NewDisplay creates a display writing to out with the given capabilities.
func NewDisplay(caps TerminalCapabilities, out io.Writer) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
		now:          time.Now,
	}
}

// Start begins a step. A running spinner is replaced.
func (d *Display) Start(msg string) error {
	if msg == "" {
		return ErrEmptyMessage
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.started = d.now()

	if d.capabilities.IsTTY {
		d.spinner = spinner.New(
			spinner.CharSets[d.symbols.SpinnerSet],
			100*time.Millisecond,
			writerOption(d.out),
		)
		d.spinner.Suffix = " " + msg
		d.spinner.Start()
		return nil
	}

	fmt.Fprintln(d.out, msg+"...")
	return nil
}

// Succeed stops the spinner and prints msg with a checkmark.
func (d *Display) Succeed(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	mark := checkmark(d.symbols, d.capabilities.SupportsColor)
	fmt.Fprintf(d.out, "%s %s%s\n", mark, msg, formatElapsed(d.elapsedLocked()))
}

// Fail stops the spinner and prints msg and err with a failure mark.
func (d *Display) Fail(msg string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	mark := failureMark(d.symbols, d.capabilities.SupportsColor)
	if err != nil {
		fmt.Fprintf(d.out, "%s %s: %v\n", mark, msg, err)
		return
	}
	fmt.Fprintf(d.out, "%s %s\n", mark, msg)
}

// Stop stops the spinner without printing a result, e.g. before the wrapped
// command writes to the same terminal.
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// writerOption lets the spinner check the real file for a terminal.
func writerOption(out io.Writer) spinner.Option {
	if f, ok := out.(*os.File); ok {
		return spinner.WithWriterFile(f)
	}
	return spinner.WithWriter(out)
}

func (d *Display) stopLocked() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

func (d *Display) elapsedLocked() time.Duration {
	if d.started.IsZero() {
		return 0
	}
	return d.now().Sub(d.started)
}
