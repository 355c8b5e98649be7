// Package filestore reads and writes plain text files as rows.
package filestore

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// maxLine bounds a single row read from disk.
const maxLine = 16 * 1024 * 1024

// Store loads and saves files. Tabs are expanded to TabStop spaces on load
// and are not restored on save.
type Store struct {
	TabStop int
}

// New creates a store with the given tab width.
func New(tabStop int) *Store {
	if tabStop < 1 {
		tabStop = 1
	}
	return &Store{TabStop: tabStop}
}

// Load reads path into rows. Line endings (LF or CRLF) are dropped.
func (s *Store) Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	tab := strings.Repeat(" ", s.TabStop)
	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		lines = append(lines, strings.ReplaceAll(line, "\t", tab))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines, nil
}

// Save writes rows joined by CRLF to path and returns the bytes written.
func (s *Store) Save(lines []string, path string) (int, error) {
	data := strings.Join(lines, "\r\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(data), nil
}
