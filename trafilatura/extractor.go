// Package trafilatura extracts the main content of a page with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docpage"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ docpage.Extractor = (*Extractor)(nil)

// Extractor implements docpage.Extractor. Fallback extractors run when
// trafilatura's own pass finds too little text.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML. Empty input is an EINVALID
// error.
func (e *Extractor) Extract(rawHTML string) (*docpage.Extraction, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docpage.Errorf(docpage.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, docpage.Errorf(docpage.EINVALID, "extract content: %v", err)
	}

	out := &docpage.Extraction{Title: result.Metadata.Title}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		out.ContentHTML = buf.String()
	}
	return out, nil
}
