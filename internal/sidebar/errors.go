package sidebar

import (
	"fmt"
)

// Filesystem operations reported on a ScanFailure.
const (
	OpReadDir = "readdir"
	OpLstat   = "lstat"
)

// ScanFailure is the tagged failure of one scan step. Non-fatal failures are
// absorbed at the level where they occur; only a failure to list the content
// root is Fatal.
type ScanFailure struct {
	Path  string
	Op    string
	Fatal bool
	Err   error
}

func newFailure(path, op string, sentinel, cause error) *ScanFailure {
	return &ScanFailure{Path: path, Op: op, Err: fmt.Errorf("%w: %w", sentinel, cause)}
}

func (f *ScanFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Op, f.Path, f.Err)
}

func (f *ScanFailure) Unwrap() error { return f.Err }
