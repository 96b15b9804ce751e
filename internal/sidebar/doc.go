// Package sidebar derives a renderer navigation structure from a directory of
// markdown documents.
//
// Every immediate subdirectory of the content root becomes one top-level group,
// keyed "/<name>/". Inside a group, documents come first (index and readme
// pinned to the top, the rest in case-insensitive order) followed by nested
// groups in listing order. Entries are filtered by name through a FilterSet that
// applies at every depth.
//
// Scans are best effort: an unreadable entry or subdirectory is logged and left
// out, and only an unreadable content root fails the whole scan.
package sidebar
