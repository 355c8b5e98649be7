// Package keys decodes raw terminal input into logical key events.
package keys

import "fmt"

// Kind identifies a logical key.
type Kind int

const (
	KindByte Kind = iota // plain byte; Key.Byte holds the code
	KindEnter
	KindBackspace
	KindEscape
	KindUp
	KindDown
	KindLeft
	KindRight
	KindHome
	KindEnd
	KindPageUp
	KindPageDown
	KindDelete
)

var kindNames = [...]string{
	KindByte:      "byte",
	KindEnter:     "enter",
	KindBackspace: "backspace",
	KindEscape:    "escape",
	KindUp:        "up",
	KindDown:      "down",
	KindLeft:      "left",
	KindRight:     "right",
	KindHome:      "home",
	KindEnd:       "end",
	KindPageUp:    "pageup",
	KindPageDown:  "pagedown",
	KindDelete:    "delete",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Key is one decoded keystroke.
type Key struct {
	Kind Kind
	Byte byte // only meaningful for KindByte
}

// Special key values.
var (
	Enter     = Key{Kind: KindEnter}
	Backspace = Key{Kind: KindBackspace}
	Escape    = Key{Kind: KindEscape}
	Up        = Key{Kind: KindUp}
	Down      = Key{Kind: KindDown}
	Left      = Key{Kind: KindLeft}
	Right     = Key{Kind: KindRight}
	Home      = Key{Kind: KindHome}
	End       = Key{Kind: KindEnd}
	PageUp    = Key{Kind: KindPageUp}
	PageDown  = Key{Kind: KindPageDown}
	Delete    = Key{Kind: KindDelete}
)

// Byte returns the key for a plain input byte.
func Byte(b byte) Key {
	return Key{Kind: KindByte, Byte: b}
}

// Ctrl returns the byte a terminal sends for Ctrl plus c.
func Ctrl(c byte) byte {
	return c & 0x1f
}

func (k Key) String() string {
	if k.Kind != KindByte {
		return k.Kind.String()
	}
	switch {
	case k.Byte < 0x20:
		return fmt.Sprintf("ctrl-%c", k.Byte+'@')
	case k.Byte < 0x7f:
		return fmt.Sprintf("%q", rune(k.Byte))
	}
	return fmt.Sprintf("0x%02x", k.Byte)
}
