package watch

// EventKind classifies a change notification from the content tree.
type EventKind int

const (
	Created EventKind = iota
	CreatedDirectory
	Changed
	Removed
	RemovedDirectory
)

func (k EventKind) String() string {
	switch k {
	case Created:
		return "created"
	case CreatedDirectory:
		return "created_directory"
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	case RemovedDirectory:
		return "removed_directory"
	default:
		return "unknown"
	}
}

// Handler receives classified change notifications.
type Handler interface {
	Notify(kind EventKind, path string)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(kind EventKind, path string)

func (f HandlerFunc) Notify(kind EventKind, path string) { f(kind, path) }
