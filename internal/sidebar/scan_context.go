package sidebar

import (
	"log/slog"
	"slices"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsidebar/internal/logfields"
	"git.home.luguber.info/inful/docsidebar/internal/metrics"
)

// DefaultConcurrency bounds how many sibling subdirectories are scanned at once.
const DefaultConcurrency = 8

// Options configures one scan. It is never mutated by the scan.
type Options struct {
	// UseDocumentTitle prefers a document's first top-level heading over its file name.
	UseDocumentTitle bool

	ExcludeDirectories []string
	ExcludeDocuments   []string
	IncludeDirectories []string
	IncludeDocuments   []string

	// Concurrency bounds the fan-out over sibling subdirectories of one parent.
	// Zero or negative selects DefaultConcurrency.
	Concurrency int

	Recorder metrics.Recorder
}

// scanContext is the read-only state shared by every step of one scan.
type scanContext struct {
	fs          billy.Filesystem
	filters     FilterSet
	opts        Options
	concurrency int
	recorder    metrics.Recorder
	scanID      string
}

func newScanContext(fs billy.Filesystem, opts Options) *scanContext {
	sc := &scanContext{
		fs: fs,
		filters: NewFilterSet(
			DefaultExcludes,
			slices.Concat(opts.ExcludeDirectories, opts.ExcludeDocuments),
			slices.Concat(opts.IncludeDirectories, opts.IncludeDocuments),
		),
		opts:        opts,
		concurrency: opts.Concurrency,
		recorder:    opts.Recorder,
		scanID:      uuid.NewString(),
	}
	if sc.concurrency <= 0 {
		sc.concurrency = DefaultConcurrency
	}
	if sc.recorder == nil {
		sc.recorder = metrics.NoopRecorder{}
	}
	return sc
}

// entryFailed absorbs a per-entry failure: the entry is skipped, the scan goes on.
func (sc *scanContext) entryFailed(f *ScanFailure) {
	slog.Warn("Skipping unreadable entry",
		logfields.ScanID(sc.scanID),
		logfields.Path(f.Path),
		logfields.Op(f.Op),
		logfields.Error(f.Err))
	sc.recorder.IncEntryFailure(f.Op)
}

// subtreeFailed absorbs a failed subdirectory: it contributes nothing to its parent.
func (sc *scanContext) subtreeFailed(f *ScanFailure) {
	slog.Warn("Omitting unreadable directory from sidebar",
		logfields.ScanID(sc.scanID),
		logfields.Path(f.Path),
		logfields.Op(f.Op),
		logfields.Error(f.Err))
	sc.recorder.IncEntryFailure(f.Op)
}
