package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// WindowSize returns the terminal dimensions of out.
//
// When the size ioctl fails or reports zero columns, it moves the cursor to
// the bottom-right corner and asks the terminal where it ended up; the reply
// is read from in, which must already be in raw mode.
func WindowSize(in io.Reader, out *os.File) (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col != 0 {
		return int(ws.Row), int(ws.Col), nil
	}

	rows, cols, err = querySize(in, out)
	if err != nil {
		return 0, 0, &TerminalError{Op: "window size", Err: err}
	}
	return rows, cols, nil
}

func querySize(in io.Reader, out io.Writer) (rows, cols int, err error) {
	if _, err := io.WriteString(out, cursorFarCorner+cursorReport); err != nil {
		return 0, 0, fmt.Errorf("requesting cursor position: %w", err)
	}

	var reply []byte
	b := make([]byte, 1)
	for len(reply) < 32 {
		n, err := in.Read(b)
		if n == 0 || err != nil {
			break
		}
		reply = append(reply, b[0])
		if b[0] == 'R' {
			break
		}
	}
	return ParseCursorReport(reply)
}

// ParseCursorReport parses a "ESC [ rows ; cols R" cursor position reply.
func ParseCursorReport(reply []byte) (rows, cols int, err error) {
	if len(reply) < 2 || reply[0] != '\033' || reply[1] != '[' {
		return 0, 0, errors.New("invalid cursor position reply")
	}
	body, ok := bytes.CutSuffix(reply[2:], []byte("R"))
	if !ok {
		return 0, 0, errors.New("unterminated cursor position reply")
	}
	r, c, ok := bytes.Cut(body, []byte(";"))
	if !ok {
		return 0, 0, fmt.Errorf("malformed cursor position %q", body)
	}
	rows, err = strconv.Atoi(string(r))
	if err != nil {
		return 0, 0, fmt.Errorf("parsing rows: %w", err)
	}
	cols, err = strconv.Atoi(string(c))
	if err != nil {
		return 0, 0, fmt.Errorf("parsing columns: %w", err)
	}
	if rows < 1 || cols < 1 {
		return 0, 0, fmt.Errorf("invalid size %dx%d", cols, rows)
	}
	return rows, cols, nil
}
