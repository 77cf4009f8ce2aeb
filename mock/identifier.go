package mock

import (
	"context"

	"github.com/fwojciec/docpage"
)

var _ docpage.IdentifierSource = (*IdentifierSource)(nil)

// IdentifierSource is a mock implementation of docpage.IdentifierSource.
type IdentifierSource struct {
	IdentifiersFn func(ctx context.Context) ([]docpage.RawIdentifier, error)
}

func (s *IdentifierSource) Identifiers(ctx context.Context) ([]docpage.RawIdentifier, error) {
	return s.IdentifiersFn(ctx)
}

// StaticSource returns an IdentifierSource that always yields raws.
func StaticSource(raws ...docpage.RawIdentifier) *IdentifierSource {
	return &IdentifierSource{
		IdentifiersFn: func(context.Context) ([]docpage.RawIdentifier, error) {
			return raws, nil
		},
	}
}
