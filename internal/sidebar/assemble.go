package sidebar

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"git.home.luguber.info/inful/docsidebar/internal/logfields"
	"git.home.luguber.info/inful/docsidebar/internal/metrics"
	derrors "git.home.luguber.info/inful/docsidebar/internal/sidebar/errors"
)

const rootDir = "."

// Map is the navigation structure handed to the renderer: group key
// ("/<group>/") to the ordered children of that group.
type Map map[string][]*Node

// GroupKey returns the map key of a top-level group.
func GroupKey(label string) string { return "/" + label + "/" }

// Keys returns the group keys in sorted order.
func (m Map) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// CountDocuments returns the number of document nodes at any depth.
func (m Map) CountDocuments() int {
	n := 0
	for _, items := range m {
		n += countDocuments(items)
	}
	return n
}

func countDocuments(items []*Node) int {
	n := 0
	for _, it := range items {
		if it.Kind == KindDocument {
			n++
			continue
		}
		n += countDocuments(it.Items)
	}
	return n
}

// Assemble scans the content directory root into a navigation map.
func Assemble(root string, opts Options) (Map, error) {
	return AssembleFS(osfs.New(root), opts)
}

// AssembleFS scans the root of fs. Each immediate subdirectory becomes one
// group; files directly under the root are not grouped. Only a failure to
// list the root itself is returned, as a fatal *ScanFailure; every other
// failure is logged and leaves a partial map.
func AssembleFS(fs billy.Filesystem, opts Options) (Map, error) {
	sc := newScanContext(fs, opts)
	start := time.Now()
	slog.Info("Generating sidebar", logfields.ScanID(sc.scanID), logfields.Path(fs.Root()))

	entries, err := fs.ReadDir(rootDir)
	if err != nil {
		failure := &ScanFailure{
			Path:  fs.Root(),
			Op:    OpReadDir,
			Fatal: true,
			Err:   fmt.Errorf("%w: %w", derrors.ErrRootUnreadable, err),
		}
		slog.Error("Sidebar generation failed",
			logfields.ScanID(sc.scanID),
			logfields.Path(failure.Path),
			logfields.Error(failure.Err))
		sc.recorder.IncScanOutcome(metrics.OutcomeFatal)
		return nil, failure
	}

	var dirs []string
	for _, entry := range entries {
		name := entry.Name()
		if !sc.filters.Allows(name) {
			continue
		}
		p := fs.Join(rootDir, name)
		info, err := fs.Lstat(p)
		if err != nil {
			sc.entryFailed(newFailure(p, OpLstat, derrors.ErrEntryStat, err))
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, p)
		}
	}

	m := make(Map, len(dirs))
	for _, group := range sc.buildGroups(dirs) {
		m[GroupKey(group.Label)] = group.Items
		slog.Debug("Sidebar group built",
			logfields.ScanID(sc.scanID),
			logfields.Group(group.Label),
			slog.Int("items", len(group.Items)))
	}

	elapsed := time.Since(start)
	docs := m.CountDocuments()
	sc.recorder.ObserveScanDuration(elapsed)
	sc.recorder.SetLastScan(len(m), docs)
	sc.recorder.IncScanOutcome(metrics.OutcomeSuccess)
	slog.Info("Sidebar generated",
		logfields.ScanID(sc.scanID),
		slog.Int("groups", len(m)),
		slog.Int("documents", docs),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return m, nil
}
