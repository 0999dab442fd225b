package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const maxHistoryLines = 500

// shellHistoryPath is the command bar history file. Tests point it at a
// temp dir.
var shellHistoryPath = func() string {
	p, err := homedir.Expand("~/.roadmap/history")
	if err != nil {
		return ""
	}
	return p
}

// shellHistory is the command bar's recall list. Moving past the newest
// entry restores whatever was typed before recall started.
type shellHistory struct {
	path    string
	entries []string
	pos     int
	draft   string
}

func openShellHistory() *shellHistory {
	path := shellHistoryPath()
	h := &shellHistory{path: path}
	if path != "" {
		h.entries = readHistory(path)
	}
	h.pos = len(h.entries)
	return h
}

// add records line and persists it. A repeat of the newest entry is not
// stored twice.
func (h *shellHistory) add(line string) {
	line = strings.TrimSpace(line)
	h.draft = ""
	if line == "" {
		h.pos = len(h.entries)
		return
	}
	if n := len(h.entries); n == 0 || h.entries[n-1] != line {
		h.entries = append(h.entries, line)
		if h.path != "" {
			appendHistory(h.path, line)
		}
	}
	h.pos = len(h.entries)
}

// prev steps back from the current input and returns the entry to show.
func (h *shellHistory) prev(current string) (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	h.pos--
	return h.entries[h.pos], true
}

// next steps forward, ending on the saved draft.
func (h *shellHistory) next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}

// readHistory loads the newest maxHistoryLines entries, dropping blanks
// and consecutive repeats. A missing file yields nil.
func readHistory(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || (len(lines) > 0 && lines[len(lines)-1] == line) {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) > maxHistoryLines {
		lines = lines[len(lines)-maxHistoryLines:]
	}
	return lines
}

// appendHistory writes one line. History is best-effort, so errors are
// dropped.
func appendHistory(path, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line + "\n")
}
