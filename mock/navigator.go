package mock

import (
	"context"

	"github.com/fwojciec/docpage"
)

var _ docpage.Navigator = (*Navigator)(nil)

// Navigator is a mock implementation of docpage.Navigator.
type Navigator struct {
	NavigateFn func(ctx context.Context, anchor string) error
}

func (n *Navigator) Navigate(ctx context.Context, anchor string) error {
	return n.NavigateFn(ctx, anchor)
}
