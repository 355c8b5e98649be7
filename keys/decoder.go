package keys

import (
	"bufio"
	"errors"
	"io"
)

const (
	byteEscape    = 0x1b
	byteEnter     = 13
	byteBackspace = 127
)

// decoder states for escape sequences
type state int

const (
	stateNormal state = iota
	stateSawEscape
	stateSawBracket
	stateSawO
)

// Decoder turns terminal input bytes into Keys.
//
// The input is expected to be a raw-mode terminal with VMIN=0 and a short
// VTIME, so a read with nothing pending returns no bytes. Decoder treats such
// an empty read as "no more bytes" inside an escape sequence and as "wait
// again" before the first byte of a key.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// ReadKey blocks until one key is available.
// Only a read error other than io.EOF on the first byte is returned.
func (d *Decoder) ReadKey() (Key, error) {
	var c byte
	for {
		b, err := d.r.ReadByte()
		if err == nil {
			c = b
			break
		}
		if !errors.Is(err, io.EOF) {
			return Key{}, err
		}
	}

	switch c {
	case byteEnter:
		return Enter, nil
	case byteBackspace:
		return Backspace, nil
	case byteEscape:
		return d.readEscape(), nil
	}
	return Byte(c), nil
}

// escapeBudget is how many bytes after ESC belong to one sequence.
const escapeBudget = 3

// readEscape runs the escape state machine. It consumes at most three bytes
// after ESC and never fails: anything it does not recognise is Escape, and
// the rest of a rejected sequence that has already arrived is dropped.
func (d *Decoder) readEscape() Key {
	st := stateSawEscape
	used := 0
	for used < escapeBudget {
		b, ok := d.next()
		if !ok {
			return Escape
		}
		used++
		switch st {
		case stateSawEscape:
			switch b {
			case '[':
				st = stateSawBracket
			case 'O':
				st = stateSawO
			default:
				d.drop(escapeBudget - used)
				return Escape
			}
		case stateSawBracket:
			if b >= '0' && b <= '9' {
				t, ok := d.next()
				if !ok || t != '~' {
					return Escape
				}
				return tildeKey(b)
			}
			k := bracketKey(b)
			if k == Escape {
				d.drop(escapeBudget - used)
			}
			return k
		case stateSawO:
			k := oKey(b)
			if k == Escape {
				d.drop(escapeBudget - used)
			}
			return k
		}
	}
	return Escape
}

// drop discards up to n bytes that are already buffered without waiting
// for more input.
func (d *Decoder) drop(n int) {
	if b := d.r.Buffered(); b < n {
		n = b
	}
	if n > 0 {
		d.r.Discard(n)
	}
}

func (d *Decoder) next() (byte, bool) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, false
	}
	return b, true
}

// tildeKey maps ESC [ digit ~.
func tildeKey(digit byte) Key {
	switch digit {
	case '1', '7':
		return Home
	case '3':
		return Delete
	case '4', '8':
		return End
	case '5':
		return PageUp
	case '6':
		return PageDown
	}
	return Escape
}

// bracketKey maps ESC [ letter.
func bracketKey(b byte) Key {
	switch b {
	case 'A':
		return Up
	case 'B':
		return Down
	case 'C':
		return Right
	case 'D':
		return Left
	case 'H':
		return Home
	case 'F':
		return End
	}
	return Escape
}

// oKey maps ESC O letter.
func oKey(b byte) Key {
	switch b {
	case 'H':
		return Home
	case 'F':
		return End
	}
	return Escape
}
