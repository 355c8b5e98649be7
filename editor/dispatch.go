package editor

import (
	"errors"
	"fmt"
	"log"

	"wrd/keys"
)

// Command is what a key asks the editor to do.
type Command int

const (
	CmdNone Command = iota
	CmdInsert
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdHome
	CmdEnd
	CmdPageUp
	CmdPageDown
	CmdNewline
	CmdBackspace
	CmdDelete
	CmdQuit
	CmdSave
	CmdClearLine
)

// ErrNoFilePath is returned by a save when the buffer has no file.
var ErrNoFilePath = errors.New("no file name")

// Saver persists the buffer.
type Saver interface {
	Save(lines []string, path string) (int, error)
}

// Bindings maps control bytes to commands.
type Bindings map[byte]Command

// DefaultBindings returns Ctrl-Q quit, Ctrl-S save and Ctrl-U clear line.
func DefaultBindings() Bindings {
	return Bindings{
		keys.Ctrl('q'): CmdQuit,
		keys.Ctrl('s'): CmdSave,
		keys.Ctrl('u'): CmdClearLine,
	}
}

// Result tells the driving loop what happened.
type Result struct {
	Quit bool
}

// Dispatcher applies keys to a State.
type Dispatcher struct {
	bindings Bindings
	saver    Saver
	tabStop  int
}

// NewDispatcher creates a dispatcher. A nil bindings map uses the defaults.
func NewDispatcher(bindings Bindings, saver Saver, tabStop int) *Dispatcher {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	if tabStop < 1 {
		tabStop = 1
	}
	return &Dispatcher{bindings: bindings, saver: saver, tabStop: tabStop}
}

// Command maps a key to a command.
func (d *Dispatcher) Command(k keys.Key) Command {
	switch k.Kind {
	case keys.KindUp:
		return CmdUp
	case keys.KindDown:
		return CmdDown
	case keys.KindLeft:
		return CmdLeft
	case keys.KindRight:
		return CmdRight
	case keys.KindHome:
		return CmdHome
	case keys.KindEnd:
		return CmdEnd
	case keys.KindPageUp:
		return CmdPageUp
	case keys.KindPageDown:
		return CmdPageDown
	case keys.KindEnter:
		return CmdNewline
	case keys.KindBackspace:
		return CmdBackspace
	case keys.KindDelete:
		return CmdDelete
	case keys.KindByte:
		if cmd, ok := d.bindings[k.Byte]; ok {
			return cmd
		}
		if k.Byte == '\t' || (k.Byte >= 0x20 && k.Byte != 0x7f) {
			return CmdInsert
		}
	}
	return CmdNone
}

// Apply runs the command for k against st.
// Only a failed save returns an error; the buffer is unchanged in that case.
func (d *Dispatcher) Apply(st *State, k keys.Key) (Result, error) {
	switch d.Command(k) {
	case CmdQuit:
		return Result{Quit: true}, nil
	case CmdInsert:
		if k.Byte == '\t' {
			for i := 0; i < d.tabStop; i++ {
				st.insertByte(' ')
			}
		} else {
			st.insertByte(k.Byte)
		}
	case CmdUp:
		st.moveUp()
	case CmdDown:
		st.moveDown()
	case CmdLeft:
		st.moveLeft()
	case CmdRight:
		st.moveRight()
	case CmdHome:
		st.CX = 0
	case CmdEnd:
		st.CX = st.rowLen()
	case CmdPageUp:
		for i := 0; i < st.ScreenRows; i++ {
			st.moveUp()
		}
	case CmdPageDown:
		for i := 0; i < st.ScreenRows; i++ {
			st.moveDown()
		}
	case CmdNewline:
		st.insertRowBelow()
	case CmdBackspace:
		st.deleteBackward()
	case CmdDelete:
		// decoded but not bound to an edit
	case CmdClearLine:
		st.clearRow()
	case CmdSave:
		return Result{}, d.save(st)
	}
	return Result{}, nil
}

func (d *Dispatcher) save(st *State) error {
	if st.FilePath == "" {
		st.SetStatus("Can't save: %v", ErrNoFilePath)
		return ErrNoFilePath
	}
	if d.saver == nil {
		return errors.New("no file store configured")
	}

	n, err := d.saver.Save(st.lines, st.FilePath)
	if err != nil {
		st.SetStatus("Can't save! %v", err)
		return fmt.Errorf("saving %s: %w", st.FilePath, err)
	}
	log.Printf("saved %s (%d bytes)", st.FilePath, n)
	st.SetStatus("%d bytes written to %s", n, st.FilePath)
	return nil
}
