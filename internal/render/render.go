// Package render serializes a sidebar map for the host site renderer or for
// a human at a terminal.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsidebar/internal/sidebar"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTree Format = "tree"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat normalizes a format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatTree:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write encodes m to w. colorize only affects FormatTree.
func Write(w io.Writer, m sidebar.Map, format Format, colorize bool) error {
	switch format {
	case FormatJSON, "":
		return JSON(w, m)
	case FormatYAML:
		return YAML(w, m)
	case FormatTree:
		return Tree(w, m, colorize)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// JSON writes m as indented JSON with keys in sorted order.
func JSON(w io.Writer, m sidebar.Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if m == nil {
		m = sidebar.Map{}
	}
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode sidebar json: %w", err)
	}
	return nil
}

// YAML writes m as a YAML mapping with keys in sorted order.
func YAML(w io.Writer, m sidebar.Map) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if m == nil {
		m = sidebar.Map{}
	}
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode sidebar yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush sidebar yaml: %w", err)
	}
	return nil
}
