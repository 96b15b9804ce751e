package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"git.home.luguber.info/inful/docsidebar/internal/sidebar"
)

type palette struct {
	group *color.Color
	doc   *color.Color
	link  *color.Color
}

func newPalette(colorize bool) palette {
	p := palette{
		group: color.New(color.FgCyan, color.Bold),
		doc:   color.New(color.Reset),
		link:  color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.group, p.doc, p.link} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Tree writes m as an indented tree, one group key per block.
func Tree(w io.Writer, m sidebar.Map, colorize bool) error {
	bw := bufio.NewWriter(w)
	p := newPalette(colorize)
	for i, key := range m.Keys() {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw, p.group.Sprint(key))
		writeItems(bw, p, m[key], "")
	}
	return bw.Flush()
}

func writeItems(w io.Writer, p palette, items []*sidebar.Node, prefix string) {
	for i, n := range items {
		branch, indent := "├── ", "│   "
		if i == len(items)-1 {
			branch, indent = "└── ", "    "
		}
		if n.Kind == sidebar.KindDocument {
			fmt.Fprintf(w, "%s%s%s %s\n", prefix, branch, p.doc.Sprint(n.Label), p.link.Sprint(n.Link))
			continue
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, p.group.Sprint(n.Label+"/"))
		writeItems(w, p, n.Items, prefix+indent)
	}
}
