package render

import (
	"bytes"
	"io"
	"strings"
	"time"

	"wrd/editor"
)

// Product identity shown on an empty buffer.
const (
	Name    = "Wrd"
	Version = "0.0.1"
	Credit  = "by the wrd authors"
)

// Options controls the look of a frame.
type Options struct {
	Filler       string        // marks screen rows past the end of the buffer
	BannerOffset int           // banner row is ScreenRows/3 + BannerOffset
	MessageTTL   time.Duration // how long a status message stays visible
}

// DefaultOptions returns the stock frame options.
func DefaultOptions() Options {
	return Options{
		Filler:       ".",
		BannerOffset: 10,
		MessageTTL:   5 * time.Second,
	}
}

// Renderer repaints the whole screen from an editor state.
type Renderer struct {
	w    io.Writer
	opts Options
	buf  bytes.Buffer
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, opts Options) *Renderer {
	return &Renderer{w: w, opts: opts}
}

// Refresh scrolls the viewport to the cursor and writes one full frame in a
// single Write call.
func (r *Renderer) Refresh(st *editor.State) error {
	r.buf.Reset()
	r.buf.WriteString(CursorHide)
	r.buf.WriteString(CursorHome)

	st.Scroll()
	r.drawRows(st)
	r.drawMessageBar(st)

	r.buf.WriteString(CursorTo(st.CY-st.RowOffset+1, st.CX+1))
	r.buf.WriteString(CursorShow)

	if _, err := r.w.Write(r.buf.Bytes()); err != nil {
		return &TerminalError{Op: "write", Err: err}
	}
	return nil
}

func (r *Renderer) drawRows(st *editor.State) {
	bannerRow := st.ScreenRows/3 + r.opts.BannerOffset
	for i := 0; i < st.ScreenRows; i++ {
		fileRow := i + st.RowOffset
		switch {
		case fileRow < st.NumRows():
			r.buf.WriteString(st.Row(fileRow))
		case st.Pristine() && i == bannerRow:
			r.banner(Name+" -- version "+Version, st.ScreenCols)
		case st.Pristine() && i == bannerRow+1:
			r.banner(Credit, st.ScreenCols)
		default:
			r.buf.WriteString(r.opts.Filler)
		}
		r.buf.WriteString(ClearLine)
		r.buf.WriteString("\r\n")
	}
}

func (r *Renderer) banner(text string, cols int) {
	text = clip(text, cols)
	r.buf.WriteString(r.opts.Filler)
	if pad := centerPad(text, cols) - len(r.opts.Filler); pad > 0 {
		r.buf.WriteString(strings.Repeat(" ", pad))
	}
	r.buf.WriteString(text)
}

func (r *Renderer) drawMessageBar(st *editor.State) {
	r.buf.WriteString(ClearLine)
	if msg := st.Status(r.opts.MessageTTL); msg != "" {
		r.buf.WriteString(clip(msg, st.ScreenCols))
	}
}

// ClearScreenTo wipes the screen and homes the cursor.
func ClearScreenTo(w io.Writer) error {
	_, err := io.WriteString(w, ClearScreen+CursorHome)
	return err
}
