package mock

import (
	"context"

	"github.com/fwojciec/docpage"
)

var _ docpage.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of docpage.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *docpage.RenderedPage) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *docpage.RenderedPage) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
