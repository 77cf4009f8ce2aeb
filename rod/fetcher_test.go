package rod_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docpage"
	"github.com/fwojciec/docpage/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Close_WithoutFetch(t *testing.T) {
	t.Parallel()

	fetcher := rod.NewFetcher()

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())
}

func TestFetcher_Fetch_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	fetcher := rod.NewFetcher()
	require.NoError(t, fetcher.Close())

	_, err := fetcher.Fetch(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, docpage.EINVALID, docpage.ErrorCode(err))
	assert.Contains(t, docpage.ErrorMessage(err), "closed")
}

func TestFetcher_Fetch_CanceledContext(t *testing.T) {
	t.Parallel()

	fetcher := rod.NewFetcher()
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx, "http://example.com")

	assert.ErrorIs(t, err, context.Canceled)
}
