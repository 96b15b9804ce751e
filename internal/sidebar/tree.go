package sidebar

import (
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"git.home.luguber.info/inful/docsidebar/internal/foundation"
	derrors "git.home.luguber.info/inful/docsidebar/internal/sidebar/errors"
)

type treeResult = foundation.Result[*Node, *ScanFailure]

// buildTree scans dir into a group node. A listing failure fails only this
// subtree; every other failure below it is absorbed where it occurs.
func buildTree(sc *scanContext, dir string) treeResult {
	entries, err := sc.fs.ReadDir(dir)
	if err != nil {
		return foundation.Err[*Node](newFailure(dir, OpReadDir, derrors.ErrDirectoryList, err))
	}

	var docs []*Node
	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		if !sc.filters.Allows(name) {
			continue
		}
		p := sc.fs.Join(dir, name)
		info, err := sc.fs.Lstat(p)
		if err != nil {
			sc.entryFailed(newFailure(p, OpLstat, derrors.ErrEntryStat, err))
			continue
		}
		if info.IsDir() {
			subdirs = append(subdirs, p)
			continue
		}
		if !IsDocument(name) {
			continue
		}
		docs = append(docs, sc.buildLeaf(name, p))
	}

	sortDocuments(docs)
	groups := sc.buildGroups(subdirs)

	group := NewGroup(filepath.Base(dir))
	group.Items = slices.Grow(group.Items, len(docs)+len(groups))
	group.Items = append(group.Items, docs...)
	group.Items = append(group.Items, groups...)
	return foundation.Ok[*Node, *ScanFailure](group)
}

func (sc *scanContext) buildLeaf(name, p string) *Node {
	stem := DocumentStem(name)
	title := ""
	if sc.opts.UseDocumentTitle {
		title = ReadTitle(sc.fs, p).UnwrapOr("")
	}
	return NewLeaf(stem, title, p)
}

// buildGroups scans sibling directories concurrently, bounded by the scan's
// concurrency, and waits for all of them. Groups keep the order of dirs;
// failed subtrees are logged and dropped.
func (sc *scanContext) buildGroups(dirs []string) []*Node {
	results := make([]treeResult, len(dirs))
	var g errgroup.Group
	g.SetLimit(sc.concurrency)
	for i, dir := range dirs {
		g.Go(func() error {
			results[i] = buildTree(sc, dir)
			return nil
		})
	}
	_ = g.Wait()

	groups := make([]*Node, 0, len(dirs))
	for _, r := range results {
		if r.IsErr() {
			sc.subtreeFailed(r.UnwrapErr())
			continue
		}
		groups = append(groups, r.Unwrap())
	}
	return groups
}

// isPinned reports whether a document stem sorts to the top of its group.
func isPinned(stem string) bool {
	return strings.EqualFold(stem, "index") || strings.EqualFold(stem, "readme")
}

// sortDocuments puts index and readme first, then orders by case-folded
// name. The raw name breaks ties so the order is total.
func sortDocuments(docs []*Node) {
	// A Caser is stateful; sibling scans each sort with their own.
	fold := cases.Fold()
	keys := make(map[*Node]string, len(docs))
	for _, d := range docs {
		keys[d] = fold.String(d.SourceName)
	}
	slices.SortStableFunc(docs, func(a, b *Node) int {
		ap, bp := isPinned(a.SourceName), isPinned(b.SourceName)
		if ap != bp {
			if ap {
				return -1
			}
			return 1
		}
		if c := strings.Compare(keys[a], keys[b]); c != 0 {
			return c
		}
		return strings.Compare(a.SourceName, b.SourceName)
	})
}
