package sidebar

import (
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5"

	"git.home.luguber.info/inful/docsidebar/internal/foundation"
	"git.home.luguber.info/inful/docsidebar/internal/logfields"
)

// headingPattern matches a top-level ATX heading anywhere in the text:
// a single '#', one space, then the heading text.
var headingPattern = regexp.MustCompile(`(?m)^# (.+)$`)

// ExtractTitle returns the trimmed text of the first top-level heading.
// Headings whose text is blank after trimming are skipped.
func ExtractTitle(text string) foundation.Option[string] {
	for _, m := range headingPattern.FindAllStringSubmatch(text, -1) {
		if title := strings.TrimSpace(m[1]); title != "" {
			return foundation.Some(title)
		}
	}
	return foundation.None[string]()
}

// ReadTitle reads the document at p and extracts its title. Any read failure
// is treated as "no title".
func ReadTitle(fs billy.Basic, p string) foundation.Option[string] {
	f, err := fs.Open(p)
	if err != nil {
		slog.Debug("Title extraction skipped", logfields.File(p), logfields.Error(err))
		return foundation.None[string]()
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		slog.Debug("Title extraction skipped", logfields.File(p), logfields.Error(err))
		return foundation.None[string]()
	}
	return ExtractTitle(string(content))
}
