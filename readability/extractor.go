// Package readability extracts the main content of a page with
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/docpage"
	"github.com/go-shiori/go-readability"
)

var _ docpage.Extractor = (*Extractor)(nil)

// Extractor implements docpage.Extractor using Mozilla's Readability
// heuristics.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article of html. Empty input is an EINVALID error.
func (e *Extractor) Extract(html string) (*docpage.Extraction, error) {
	if strings.TrimSpace(html) == "" {
		return nil, docpage.Errorf(docpage.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return nil, docpage.Errorf(docpage.EINVALID, "extract content: %v", err)
	}

	return &docpage.Extraction{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
