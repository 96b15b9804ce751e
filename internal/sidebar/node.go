package sidebar

import (
	"encoding/json"
	"path"
	"path/filepath"
	"strings"
)

// DocumentExt is the recognized document extension. The check is an exact,
// case-sensitive suffix match: "Guide.MD" is not a document.
const DocumentExt = ".md"

// Kind tags a Node as a document leaf or a directory group.
type Kind int

const (
	KindDocument Kind = iota
	KindGroup
)

func (k Kind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "document"
}

// Node is one entry of the navigation tree. A document never has Items; a
// group always has a non-nil Items slice once built.
type Node struct {
	Label      string
	SourceName string
	Kind       Kind
	Link       string
	Collapsed  bool
	Items      []*Node
}

// NewLeaf builds a document node. relPath is the document's path relative to
// the content root, extension included; the link drops the extension and
// always starts with a slash.
func NewLeaf(name, title, relPath string) *Node {
	rel := filepath.ToSlash(relPath)
	link := "/" + strings.TrimSuffix(rel, path.Base(rel)) + DocumentStem(path.Base(rel))
	return &Node{
		Label:      labelFor(name, title),
		SourceName: name,
		Kind:       KindDocument,
		Link:       link,
	}
}

// NewGroup builds an empty, collapsed group node.
func NewGroup(name string) *Node {
	return &Node{
		Label:      name,
		SourceName: name,
		Kind:       KindGroup,
		Collapsed:  true,
		Items:      []*Node{},
	}
}

func labelFor(name, title string) string {
	if title != "" {
		return title
	}
	return name
}

// DocumentStem strips the document extension from an entry name. A name that
// is only the extension keeps it, so the stem is never empty.
func DocumentStem(name string) string {
	if name == DocumentExt {
		return name
	}
	return strings.TrimSuffix(name, DocumentExt)
}

// IsDocument reports whether an entry name carries the document extension.
func IsDocument(name string) bool {
	return strings.HasSuffix(name, DocumentExt)
}

// documentShape and groupShape are the renderer's sidebar schema.
type documentShape struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

type groupShape struct {
	Text      string  `json:"text" yaml:"text"`
	Collapsed bool    `json:"collapsed" yaml:"collapsed"`
	Items     []*Node `json:"items" yaml:"items"`
}

func (n Node) shape() any {
	if n.Kind == KindGroup {
		items := n.Items
		if items == nil {
			items = []*Node{}
		}
		return groupShape{Text: n.Label, Collapsed: n.Collapsed, Items: items}
	}
	return documentShape{Text: n.Label, Link: n.Link}
}

// MarshalJSON emits {text, link} for documents and {text, collapsed, items} for groups.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.shape())
}

// MarshalYAML mirrors MarshalJSON for YAML output.
func (n Node) MarshalYAML() (any, error) {
	return n.shape(), nil
}
