// Package htmltomarkdown exports rendered documentation pages as Markdown.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/docpage"
)

// Ensure Converter implements docpage.Converter at compile time.
var _ docpage.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert rendered pages to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. Links in pages loaded over
// HTTP are made absolute against the page's scheme and host.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docpage.Errorf(docpage.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if domain := siteRoot(pageURL); domain != "" {
		opts = append(opts, converter.WithDomain(domain))
	}

	return c.conv.ConvertString(html, opts...)
}

func siteRoot(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
