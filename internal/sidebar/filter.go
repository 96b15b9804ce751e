package sidebar

import "git.home.luguber.info/inful/docsidebar/internal/util/sets"

// DefaultExcludes are always excluded: the renderer's own configuration directory.
var DefaultExcludes = []string{".vitepress"}

// FilterSet holds the include and exclude name sets of one scan. Names are
// plain entry names, never paths, and apply at every depth.
type FilterSet struct {
	include sets.Set[string]
	exclude sets.Set[string]
}

// NewFilterSet merges the default exclusions with caller-supplied lists.
// Directory and document names are treated uniformly.
func NewFilterSet(defaultExcludes, extraExcludes, extraIncludes []string) FilterSet {
	return FilterSet{
		include: sets.Union(extraIncludes),
		exclude: sets.Union(defaultExcludes, extraExcludes),
	}
}

// IsExcluded reports whether name is in the exclude set.
func (f FilterSet) IsExcluded(name string) bool { return f.exclude.Has(name) }

// IsIncluded reports whether name passes the include set. An empty include
// set imposes no restriction.
func (f FilterSet) IsIncluded(name string) bool {
	return f.include.Len() == 0 || f.include.Has(name)
}

// Allows reports whether an entry named name takes part in the scan.
// Exclusion wins over inclusion.
func (f FilterSet) Allows(name string) bool {
	return !f.IsExcluded(name) && f.IsIncluded(name)
}
