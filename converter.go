package docpage

// Converter converts a rendered page's HTML to Markdown.
type Converter interface {
	// Convert transforms html into Markdown. Relative links are resolved
	// against pageURL when it is an http(s) URL.
	Convert(html, pageURL string) (string, error)
}
