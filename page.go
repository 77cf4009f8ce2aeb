package docpage

import "context"

// Format is the serialization of a rendered page.
type Format string

// Format constants.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return ".html"
}

// RenderedPage is a page after its timestamps have been humanized.
type RenderedPage struct {
	URL     string
	Content string
	Format  Format
}

// PageStore persists rendered pages with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *RenderedPage) error
	Commit() error
	Abort() error
}
