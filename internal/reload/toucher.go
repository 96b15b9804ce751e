// Package reload signals the host site renderer to rebuild by rewriting the
// modification time of a file it watches (typically its own config file).
package reload

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/docsidebar/internal/logfields"
)

// ErrNoPath is returned when a Toucher is built without a target file.
var ErrNoPath = errors.New("reload target path is empty")

// Toucher sets the access and modification time of one file to "now".
type Toucher struct {
	path  string
	clock clockwork.Clock
}

// NewToucher returns a Toucher for path using the wall clock.
func NewToucher(path string) (*Toucher, error) {
	return NewToucherWithClock(path, clockwork.NewRealClock())
}

// NewToucherWithClock is NewToucher with an injectable clock.
func NewToucherWithClock(path string, clock clockwork.Clock) (*Toucher, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	return &Toucher{path: path, clock: clock}, nil
}

// Path returns the file being touched.
func (t *Toucher) Path() string { return t.path }

// Touch rewrites the file's timestamps. The file must already exist.
func (t *Toucher) Touch() error {
	now := t.clock.Now()
	if err := os.Chtimes(t.path, now, now); err != nil {
		return fmt.Errorf("touch %s: %w", t.path, err)
	}
	slog.Debug("Reload signal written", logfields.File(t.path))
	return nil
}
