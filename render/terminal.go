package render

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// TerminalError is a failed terminal attribute, size or write operation.
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error {
	return e.Err
}

// Terminal handles raw mode. It remembers the attributes it found so they can
// be put back exactly once.
type Terminal struct {
	fd       int
	original unix.Termios
	raw      bool
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewTerminal snapshots the current attributes of f.
func NewTerminal(f *os.File) (*Terminal, error) {
	fd := int(f.Fd())
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, &TerminalError{Op: "get attributes", Err: err}
	}
	return &Terminal{fd: fd, original: *termios}, nil
}

// EnterRawMode switches off line buffering, echo, signals and output
// processing. Reads return after at most timeout even with no input.
func (t *Terminal) EnterRawMode(timeout time.Duration) error {
	raw := makeRaw(t.original, timeout)
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &raw); err != nil {
		return &TerminalError{Op: "set attributes", Err: err}
	}
	t.raw = true
	return nil
}

// RestoreMode restores the original terminal mode. Calls after the first
// successful restore do nothing.
func (t *Terminal) RestoreMode() error {
	if !t.raw {
		return nil
	}
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &t.original); err != nil {
		return &TerminalError{Op: "restore attributes", Err: err}
	}
	t.raw = false
	return nil
}

func makeRaw(orig unix.Termios, timeout time.Duration) unix.Termios {
	raw := orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = deciseconds(timeout)
	return raw
}

// deciseconds converts a read timeout to VTIME units, 1..255.
func deciseconds(d time.Duration) uint8 {
	n := d / (100 * time.Millisecond)
	switch {
	case n < 1:
		return 1
	case n > 255:
		return 255
	}
	return uint8(n)
}
