// Wrd is a minimal terminal text editor.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"wrd/config"
	"wrd/editor"
	"wrd/filestore"
	"wrd/keys"
	"wrd/render"
)

const helpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-U = clear line"

// renderRetries bounds immediate repaint attempts after a failed write.
const renderRetries = 3

func main() {
	path, help, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if help {
		printUsage()
		return
	}

	if err := run(path); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs returns the file to open. Anything that looks like an option
// other than -h/--help is rejected so it never becomes a file name.
func parseArgs(args []string) (path string, help bool, err error) {
	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			return "", true, nil
		case strings.HasPrefix(arg, "-"):
			return "", false, fmt.Errorf("unknown option %q (see wrd --help)", arg)
		default:
			if path == "" {
				path = arg
			}
		}
	}
	return path, false, nil
}

func printUsage() {
	fmt.Println(`Wrd - Terminal Text Editor

Usage: wrd [options] [file]

Options:
  -h, --help        Show this help

Keys:
  Ctrl-S            Save
  Ctrl-Q            Quit
  Ctrl-U            Clear line

Examples:
  wrd                 Open an empty buffer
  wrd notes.txt       Open notes.txt (created on first save)

Configuration:
  Config file: ~/.config/wrd/config.toml`)
}

func run(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	closeLog := setupLogging(cfg.LogPath())
	defer closeLog()

	if !render.IsTerminal(os.Stdin) {
		return &render.TerminalError{Op: "open", Err: errors.New("stdin is not a terminal")}
	}

	term, err := render.NewTerminal(os.Stdin)
	if err != nil {
		return err
	}
	if err := term.EnterRawMode(cfg.ReadTimeout()); err != nil {
		return err
	}
	defer func() {
		clearScreen(os.Stdout)
		if err := term.RestoreMode(); err != nil {
			log.Printf("restoring terminal: %v", err)
		}
	}()

	rows, cols, err := render.WindowSize(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	log.Printf("starting: %dx%d terminal, file %q", cols, rows, path)

	// last row is the message bar
	st := editor.NewState(rows-1, cols)
	store := filestore.New(cfg.Editor.TabStop)
	st.SetStatus(helpMessage)
	if path != "" {
		openFile(st, store, path)
	}

	d := editor.NewDispatcher(bindings(cfg.Keybindings), store, cfg.Editor.TabStop)
	r := render.NewRenderer(os.Stdout, render.Options{
		Filler:       cfg.Display.Filler,
		BannerOffset: cfg.Display.BannerOffset,
		MessageTTL:   cfg.MessageTTL(),
	})

	err = loop(st, keys.NewDecoder(os.Stdin), r, d)
	log.Printf("stopped: %v", err)
	return err
}

func clearScreen(w io.Writer) {
	if err := render.ClearScreenTo(w); err != nil {
		log.Printf("clearing screen: %v", err)
	}
}

// openFile loads path into st. On failure the empty buffer stays and the
// error is shown; a missing file becomes the save target.
func openFile(st *editor.State, store *filestore.Store, path string) {
	lines, err := store.Load(path)
	switch {
	case err == nil:
		st.Load(lines, path)
		log.Printf("loaded %s (%d rows)", path, len(lines))
	case errors.Is(err, fs.ErrNotExist):
		st.FilePath = path
		st.SetStatus("New file %s | %s", path, helpMessage)
		log.Printf("new file %s", path)
	default:
		st.SetStatus("Can't open! %v", err)
		log.Printf("load failed: %v", err)
	}
}

// bindings builds the control key map from the configured bytes.
func bindings(kb config.Keybindings) editor.Bindings {
	b := editor.Bindings{}
	for _, kc := range []struct {
		binding string
		cmd     editor.Command
	}{
		{kb.Quit, editor.CmdQuit},
		{kb.Save, editor.CmdSave},
		{kb.ClearLine, editor.CmdClearLine},
	} {
		if c, ok := config.Byte(kc.binding); ok {
			b[c] = kc.cmd
		}
	}
	return b
}

// setupLogging sends the standard logger to path, or discards it when path
// is empty. The terminal belongs to the editor, so nothing is logged there.
func setupLogging(path string) func() {
	log.SetOutput(io.Discard)
	if path == "" {
		return func() {}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		return func() {}
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() {
		log.SetOutput(io.Discard)
		f.Close()
	}
}

type keyReader interface {
	ReadKey() (keys.Key, error)
}

type screen interface {
	Refresh(st *editor.State) error
}

type applier interface {
	Apply(st *editor.State, k keys.Key) (editor.Result, error)
}

// loop renders, reads one key and applies it until a quit command.
// Only an input read error ends it early.
func loop(st *editor.State, in keyReader, out screen, d applier) error {
	for {
		refresh(st, out)

		k, err := in.ReadKey()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		res, err := apply(st, d, k)
		if err != nil {
			log.Printf("key %v: %v", k, err)
			continue
		}
		if res.Quit {
			return nil
		}
	}
}

func refresh(st *editor.State, out screen) {
	for i := 0; i < renderRetries; i++ {
		err := out.Refresh(st)
		if err == nil {
			return
		}
		log.Printf("render attempt %d: %v", i+1, err)
	}
}

// apply runs one key under recover so a bug in an edit command costs a
// status message instead of the session.
func apply(st *editor.State, d applier, k keys.Key) (res editor.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 1<<16)
			n := runtime.Stack(buf, false)
			log.Printf("panic handling %v: %v\n%s", k, r, buf[:n])
			st.SetStatus("Internal error: %v", r)
			res, err = editor.Result{}, fmt.Errorf("panic handling %v: %v", k, r)
		}
	}()
	return d.Apply(st, k)
}
