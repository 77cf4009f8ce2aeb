package mock

import "github.com/fwojciec/docpage"

var _ docpage.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docpage.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docpage.Extraction, error)
}

func (e *Extractor) Extract(html string) (*docpage.Extraction, error) {
	return e.ExtractFn(html)
}
