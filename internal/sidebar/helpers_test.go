package sidebar

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsidebar/internal/metrics"
	"git.home.luguber.info/inful/docsidebar/internal/util/sets"
)

var errInjected = errors.New("injected failure")

// writeTree creates files under root. Keys ending in "/" create empty directories.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

// faultyFS wraps a real filesystem and fails selected operations on selected
// paths, so partial failures can be exercised without relying on permissions.
type faultyFS struct {
	billy.Filesystem
	failReadDir sets.Set[string]
	failLstat   sets.Set[string]
	failOpen    sets.Set[string]
}

func newFaultyFS(root string) *faultyFS {
	return &faultyFS{
		Filesystem:  osfs.New(root),
		failReadDir: sets.New[string](),
		failLstat:   sets.New[string](),
		failOpen:    sets.New[string](),
	}
}

func (f *faultyFS) ReadDir(p string) ([]os.FileInfo, error) {
	if f.failReadDir.Has(p) {
		return nil, &os.PathError{Op: "readdir", Path: p, Err: errInjected}
	}
	return f.Filesystem.ReadDir(p)
}

func (f *faultyFS) Lstat(p string) (os.FileInfo, error) {
	if f.failLstat.Has(p) {
		return nil, &os.PathError{Op: "lstat", Path: p, Err: errInjected}
	}
	return f.Filesystem.Lstat(p)
}

func (f *faultyFS) Open(p string) (billy.File, error) {
	if f.failOpen.Has(p) {
		return nil, &os.PathError{Op: "open", Path: p, Err: errInjected}
	}
	return f.Filesystem.Open(p)
}

// countingRecorder is a concurrency-safe metrics.Recorder for assertions.
type countingRecorder struct {
	metrics.NoopRecorder
	mu        sync.Mutex
	failures  map[string]int
	outcomes  map[metrics.OutcomeLabel]int
	groups    int
	documents int
	durations int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{failures: map[string]int{}, outcomes: map[metrics.OutcomeLabel]int{}}
}

func (r *countingRecorder) IncEntryFailure(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op]++
}

func (r *countingRecorder) IncScanOutcome(o metrics.OutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[o]++
}

func (r *countingRecorder) SetLastScan(groups, documents int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups, r.documents = groups, documents
}

func (r *countingRecorder) ObserveScanDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations++
}

// labels returns the labels of items in order.
func labels(items []*Node) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

// collectLinks returns every document link in the map, at any depth.
func collectLinks(m Map) []string {
	var out []string
	var walk func(items []*Node)
	walk = func(items []*Node) {
		for _, it := range items {
			if it.Kind == KindDocument {
				out = append(out, it.Link)
				continue
			}
			walk(it.Items)
		}
	}
	for _, k := range m.Keys() {
		walk(m[k])
	}
	return out
}
