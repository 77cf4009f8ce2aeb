// Package fs provides file-based loading and storage of documentation pages.
package fs

import (
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/docpage"
)

// URLToPath converts a page location to a relative output path with the
// format's extension. HTTP URLs keep their path structure; local files keep
// only their base name.
// Example: https://example.com/pkg/bytes/ → pkg/bytes/index.html
func URLToPath(rawURL string, format docpage.Format) (string, error) {
	var p string
	if IsRemote(rawURL) {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", err
		}
		if slices.Contains(strings.Split(u.Path, "/"), "..") {
			return "", docpage.Errorf(docpage.EINVALID, "path traversal in %q", rawURL)
		}
		p = u.Path
		if p == "" || strings.HasSuffix(p, "/") {
			p += "index"
		}
		p = strings.TrimPrefix(path.Clean("/"+p), "/")
	} else {
		p = filepath.Base(LocalPath(rawURL))
		if p == "." || p == string(filepath.Separator) {
			return "", docpage.Errorf(docpage.EINVALID, "no file name in %q", rawURL)
		}
	}

	switch path.Ext(p) {
	case ".html", ".htm", ".md":
		p = strings.TrimSuffix(p, path.Ext(p))
	}
	return filepath.FromSlash(p + format.Ext()), nil
}

// IsRemote reports whether location is an http or https URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// LocalPath strips a file:// scheme from location.
func LocalPath(location string) string {
	return strings.TrimPrefix(location, "file://")
}
