package fs

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/docpage"
)

// Ensure Fetcher implements docpage.Fetcher at compile time.
var _ docpage.Fetcher = (*Fetcher)(nil)

// Fetcher reads pages from the local filesystem. Locations may be plain
// paths or file:// URLs.
type Fetcher struct{}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch returns the contents of the file at location.
func (f *Fetcher) Fetch(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(LocalPath(location))
	if errors.Is(err, os.ErrNotExist) {
		return "", docpage.Errorf(docpage.ENOTFOUND, "page not found: %s", location)
	} else if err != nil {
		return "", fmt.Errorf("read %s: %w", location, err)
	}
	return string(data), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
