package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 150 * time.Millisecond

// dbChangedMsg is sent when the database file changes on disk, for
// example because a CLI command ran in another terminal.
type dbChangedMsg struct{}

// watchDB reports writes to the database at path, its WAL and its
// journal. Bursts of writes within delay are coalesced into one signal.
// The channel is closed when ctx is done.
func watchDB(ctx context.Context, path string, delay time.Duration) (<-chan struct{}, error) {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file::memory:") {
		return nil, fmt.Errorf("watch: %q is not a file", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	// Watch the directory: SQLite replaces and recreates its side files.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	changes := make(chan struct{}, 1)

	// Only this goroutine sends on changes, so the deferred close is safe.
	go func() {
		defer close(changes)
		defer watcher.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case <-pending:
				pending = nil
				select {
				case changes <- struct{}{}:
				default:
					// A signal is already pending; the reload will see this write too.
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isDBFile(ev.Name, abs) {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Remove) {
					continue
				}
				if pending == nil {
					pending = time.After(delay)
				}
			}
		}
	}()

	return changes, nil
}

// dbSideFiles are the suffixes SQLite appends for its WAL, shared memory
// and rollback journal.
var dbSideFiles = []string{"", "-wal", "-shm", "-journal"}

// isDBFile reports whether name is the database at abs or one of its side
// files.
func isDBFile(name, abs string) bool {
	name = filepath.Clean(name)
	for _, suffix := range dbSideFiles {
		if name == abs+suffix {
			return true
		}
	}
	return false
}

// waitForDBChange turns the next signal on changes into a dbChangedMsg.
func waitForDBChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return dbChangedMsg{}
	}
}
