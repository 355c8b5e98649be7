package keys

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadKeySingleBytes(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want Key
	}{
		{"printable", []byte("a"), Byte('a')},
		{"enter", []byte{13}, Enter},
		{"backspace", []byte{127}, Backspace},
		{"ctrl-q", []byte{Ctrl('q')}, Byte(17)},
		{"ctrl-s", []byte{Ctrl('s')}, Byte(19)},
		{"high byte", []byte{0xc3}, Byte(0xc3)},
		{"line feed stays a byte", []byte{10}, Byte(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDecoder(bytes.NewReader(tt.in)).ReadKey()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestReadKeyEscapeSequences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Key
	}{
		{"up", "\x1b[A", Up},
		{"down", "\x1b[B", Down},
		{"right", "\x1b[C", Right},
		{"left", "\x1b[D", Left},
		{"home bracket H", "\x1b[H", Home},
		{"end bracket F", "\x1b[F", End},
		{"home O H", "\x1bOH", Home},
		{"end O F", "\x1bOF", End},
		{"home 1~", "\x1b[1~", Home},
		{"home 7~", "\x1b[7~", Home},
		{"delete", "\x1b[3~", Delete},
		{"end 4~", "\x1b[4~", End},
		{"end 8~", "\x1b[8~", End},
		{"page up", "\x1b[5~", PageUp},
		{"page down", "\x1b[6~", PageDown},
		{"unknown digit", "\x1b[2~", Escape},
		{"digit without tilde", "\x1b[5x", Escape},
		{"unknown letter", "\x1b[Z", Escape},
		{"unknown O letter", "\x1bOA", Escape},
		{"alt key", "\x1bx", Escape},
		{"bare escape", "\x1b", Escape},
		{"escape bracket only", "\x1b[", Escape},
		{"digit then nothing", "\x1b[5", Escape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDecoder(bytes.NewReader([]byte(tt.in))).ReadKey()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestReadKeySequence(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte("a\x1b[Bb\x1b[6~\r")))
	want := []Key{Byte('a'), Down, Byte('b'), PageDown, Enter}
	for i, w := range want {
		got, err := d.ReadKey()
		if err != nil {
			t.Fatalf("key %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("key %d: got %v, expected %v", i, got, w)
		}
	}
}

func TestReadKeyDropsRejectedSequence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{"double escape arrow", "\x1b\x1b[Az", []Key{Escape, Byte('z')}},
		{"alt then arrow tail", "\x1bx[Az", []Key{Escape, Byte('z')}},
		{"unknown bracket letter", "\x1b[Zqz", []Key{Escape, Byte('z')}},
		{"unknown O letter", "\x1bOAqz", []Key{Escape, Byte('z')}},
		{"budget is three bytes", "\x1bxabcz", []Key{Escape, Byte('c'), Byte('z')}},
		{"digit without tilde", "\x1b[5xz", []Key{Escape, Byte('z')}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(strings.NewReader(tt.input))
			for i, w := range tt.want {
				got, err := d.ReadKey()
				if err != nil {
					t.Fatalf("key %d: unexpected error: %v", i, err)
				}
				if got != w {
					t.Errorf("key %d: got %v, expected %v", i, got, w)
				}
			}
		})
	}
}

// timeoutReader returns each chunk from a separate Read call and an empty
// read in between, the way a VMIN=0 terminal does when input pauses.
type timeoutReader struct {
	chunks [][]byte
	idle   bool
}

func (r *timeoutReader) Read(p []byte) (int, error) {
	if r.idle {
		r.idle = false
		return 0, io.EOF
	}
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	r.idle = true
	return n, nil
}

func TestReadKeyWaitsForFirstByte(t *testing.T) {
	r := &timeoutReader{chunks: [][]byte{[]byte("x")}, idle: true}
	got, err := NewDecoder(r).ReadKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Byte('x') {
		t.Errorf("got %v, expected 'x'", got)
	}
}

func TestReadKeyTruncatedByTimeout(t *testing.T) {
	// ESC arrives alone; the rest of the sequence only after the timeout.
	r := &timeoutReader{chunks: [][]byte{{0x1b}, []byte("[A")}}
	d := NewDecoder(r)

	got, err := d.ReadKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Escape {
		t.Errorf("got %v, expected escape", got)
	}

	got, err = d.ReadKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Byte('[') {
		t.Errorf("got %v, expected '['", got)
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestReadKeyError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewDecoder(failingReader{boom}).ReadKey()
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Up, "up"},
		{Byte(Ctrl('q')), "ctrl-Q"},
		{Byte('a'), `'a'`},
		{Byte(0xe9), "0xe9"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("got %q, expected %q", got, tt.want)
		}
	}
}
