package editor

import (
	"testing"
	"time"

	"wrd/keys"
)

func TestNewStateHasOneEmptyRow(t *testing.T) {
	st := NewState(0, 80)
	if st.NumRows() != 1 || st.Row(0) != "" {
		t.Errorf("expected a single empty row, got %q", st.Lines())
	}
	if !st.Pristine() {
		t.Error("new state should be pristine")
	}
	if st.ScreenRows != 1 {
		t.Errorf("screen rows: got %d, expected 1", st.ScreenRows)
	}
}

func TestLoad(t *testing.T) {
	st := NewState(10, 80)
	st.Load([]string{"one", "two"}, "f.txt")
	if st.NumRows() != 2 || st.FilePath != "f.txt" || st.Pristine() {
		t.Errorf("unexpected state after load: %q %q", st.Lines(), st.FilePath)
	}

	st.Load(nil, "empty.txt")
	if st.NumRows() != 1 || st.Row(0) != "" {
		t.Errorf("empty load should leave one row, got %q", st.Lines())
	}
}

func TestRowOutOfRange(t *testing.T) {
	st := NewState(10, 80)
	if st.Row(-1) != "" || st.Row(5) != "" {
		t.Error("out of range rows should be empty")
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	lines := make([]string, 20)
	st := NewState(10, 80)
	st.Load(lines, "")
	d := NewDispatcher(nil, nil, 4)

	for i := 0; i < 15; i++ {
		if _, err := d.Apply(st, keys.Down); err != nil {
			t.Fatal(err)
		}
		st.Scroll()
		if st.CY < st.RowOffset || st.CY > st.RowOffset+st.ScreenRows-1 {
			t.Fatalf("cursor row %d outside viewport at %d", st.CY, st.RowOffset)
		}
	}
	if st.RowOffset != 6 {
		t.Errorf("row offset: got %d, expected 6", st.RowOffset)
	}

	for i := 0; i < 15; i++ {
		d.Apply(st, keys.Up)
	}
	st.Scroll()
	if st.RowOffset != 0 {
		t.Errorf("row offset after scrolling back: got %d, expected 0", st.RowOffset)
	}
}

func TestStatusExpires(t *testing.T) {
	st := NewState(10, 80)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	st.SetStatus("saved %d", 3)
	if got := st.Status(5 * time.Second); got != "saved 3" {
		t.Errorf("got %q, expected %q", got, "saved 3")
	}

	now = now.Add(5 * time.Second)
	if got := st.Status(5 * time.Second); got != "" {
		t.Errorf("expired status: got %q", got)
	}
}
