// Package editor holds the line buffer, the cursor and the key dispatcher.
package editor

import (
	"fmt"
	"time"
)

// State is the whole editing session: rows, cursor, viewport and geometry.
//
// Rows are byte strings and columns are byte offsets. The row slice is never
// empty.
type State struct {
	lines []string

	CX, CY    int // cursor column and row
	RowOffset int // first visible row, maintained by Scroll

	ScreenRows int // text rows available for the buffer
	ScreenCols int

	FilePath string

	status     string
	statusTime time.Time
	now        func() time.Time
}

// NewState creates a state with one empty row.
func NewState(rows, cols int) *State {
	if rows < 1 {
		rows = 1
	}
	return &State{
		lines:      []string{""},
		ScreenRows: rows,
		ScreenCols: cols,
		now:        time.Now,
	}
}

// Lines returns the rows. The slice must not be modified.
func (s *State) Lines() []string {
	return s.lines
}

// NumRows returns the number of rows.
func (s *State) NumRows() int {
	return len(s.lines)
}

// Row returns row i, or "" if i is out of range.
func (s *State) Row(i int) string {
	if i < 0 || i >= len(s.lines) {
		return ""
	}
	return s.lines[i]
}

// Pristine reports whether the buffer is the single default empty row.
func (s *State) Pristine() bool {
	return len(s.lines) == 1 && s.lines[0] == ""
}

// Load replaces the buffer with lines and remembers path.
// An empty slice leaves a single empty row.
func (s *State) Load(lines []string, path string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	s.lines = lines
	s.FilePath = path
	s.CX, s.CY, s.RowOffset = 0, 0, 0
}

// Scroll moves RowOffset so the cursor row is visible.
func (s *State) Scroll() {
	if s.CY < s.RowOffset {
		s.RowOffset = s.CY
	}
	if s.CY >= s.RowOffset+s.ScreenRows {
		s.RowOffset = s.CY - s.ScreenRows + 1
	}
}

// SetStatus sets the message bar text.
func (s *State) SetStatus(format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
	s.statusTime = s.clock()
}

// Status returns the message bar text if it is younger than ttl.
func (s *State) Status(ttl time.Duration) string {
	if s.status == "" || s.clock().Sub(s.statusTime) >= ttl {
		return ""
	}
	return s.status
}

func (s *State) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *State) rowLen() int {
	return len(s.lines[s.CY])
}

func (s *State) clampX() {
	if n := s.rowLen(); s.CX > n {
		s.CX = n
	}
}

func (s *State) moveLeft() {
	if s.CX > 0 {
		s.CX--
	}
	if s.CX == 0 && s.CY > 0 {
		s.CY--
		s.CX = s.rowLen()
	}
}

func (s *State) moveRight() {
	if s.CX < s.rowLen() {
		s.CX++
	}
	if s.CX == s.rowLen() && s.CY < len(s.lines)-1 {
		s.CY++
		s.CX = 0
	}
}

func (s *State) moveUp() {
	if s.CY > 0 {
		s.CY--
		s.clampX()
	}
}

func (s *State) moveDown() {
	if s.CY < len(s.lines)-1 {
		s.CY++
		s.clampX()
	}
}

// insertByte inserts c at the cursor and advances it.
func (s *State) insertByte(c byte) {
	line := []byte(s.lines[s.CY])
	line = append(line, 0)
	copy(line[s.CX+1:], line[s.CX:])
	line[s.CX] = c
	s.lines[s.CY] = string(line)
	s.CX++
}

// insertRowBelow adds an empty row after the cursor row and moves onto it.
// The current row is not split.
func (s *State) insertRowBelow() {
	s.lines = append(s.lines, "")
	copy(s.lines[s.CY+2:], s.lines[s.CY+1:])
	s.lines[s.CY+1] = ""
	s.CY++
	s.clampX()
}

// deleteBackward removes the byte before the cursor, or the whole cursor row
// when the cursor is at column 0. The removed row's text is dropped.
func (s *State) deleteBackward() {
	switch {
	case s.CX > 0:
		line := s.lines[s.CY]
		s.lines[s.CY] = line[:s.CX-1] + line[s.CX:]
		s.CX--
	case s.CY > 0:
		s.lines = append(s.lines[:s.CY], s.lines[s.CY+1:]...)
		s.CY--
		s.CX = s.rowLen()
	}
}

func (s *State) clearRow() {
	s.lines[s.CY] = ""
	s.CX = 0
}
