// Package errors provides sentinel errors for sidebar scan failures.
// They let callers classify a ScanFailure with errors.Is without string matching.
package errors

import "errors"

var (
	// ErrRootUnreadable indicates the content root could not be listed; the scan is aborted.
	ErrRootUnreadable = errors.New("content root unreadable")

	// ErrDirectoryList indicates a subdirectory could not be listed; only that subtree is dropped.
	ErrDirectoryList = errors.New("directory listing failed")

	// ErrEntryStat indicates a single directory entry could not be stat'ed.
	ErrEntryStat = errors.New("entry stat failed")
)
