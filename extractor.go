package docpage

// Extraction holds the main content of a page.
type Extraction struct {
	// Title is the page title taken from its metadata.
	Title string

	// ContentHTML is the main content with navigation, sidebars and footers
	// removed.
	ContentHTML string
}

// Extractor strips boilerplate from a rendered page.
type Extractor interface {
	Extract(html string) (*Extraction, error)
}
