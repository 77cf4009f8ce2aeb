package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/docpage"
	"github.com/fwojciec/docpage/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements docpage.Converter at compile time.
var _ docpage.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("keeps humanized timestamps as text", func(t *testing.T) {
		t.Parallel()

		html := `<p>Published <time class="timeago" datetime="2024-03-01T11:00:00Z" title="March 1, 2024">about an hour ago</time></p>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "Published about an hour ago")
	})

	t.Run("converts identifier headings", func(t *testing.T) {
		t.Parallel()

		html := `<h2 id="Buffer">type Buffer</h2><h3 id="Buffer.Len">func Len</h3>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "## type Buffer")
		assert.Contains(t, md, "### func Len")
	})

	t.Run("converts code blocks with language hint", func(t *testing.T) {
		t.Parallel()

		html := `<pre><code class="language-go">func (b *Buffer) Len() int</code></pre>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "```go")
		assert.Contains(t, md, "func (b *Buffer) Len() int")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Name</th><th>Kind</th></tr></thead>
<tbody><tr><td>MinRead</td><td>constant</td></tr></tbody>
</table>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Contains(t, md, "MinRead")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("resolves relative links against remote page", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="/pkg/io/#Reader">io.Reader</a>.</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "https://pkg.go.dev/bytes")

		require.NoError(t, err)
		assert.Contains(t, md, "[io.Reader](https://pkg.go.dev/pkg/io/#Reader)")
	})

	t.Run("leaves relative links of local pages alone", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="#Reader">Reader</a>.</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html, "docs/io.html")

		require.NoError(t, err)
		assert.Contains(t, md, "[Reader](#Reader)")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("  ", "")

		require.Error(t, err)
		assert.Equal(t, docpage.EINVALID, docpage.ErrorCode(err))
	})
}
