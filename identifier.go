package docpage

import (
	"context"
	"regexp"
	"slices"
	"strings"
)

// Kind is the category of an indexed identifier.
type Kind string

// Kind constants.
const (
	KindConstant Kind = "constant"
	KindVariable Kind = "variable"
	KindFunction Kind = "function"
	KindType     Kind = "type"
	KindField    Kind = "field"
	KindMethod   Kind = "method"
	KindUnknown  Kind = "unknown"
)

// kindCodes maps the page's data-kind markers to kinds.
var kindCodes = map[string]Kind{
	"c": KindConstant,
	"v": KindVariable,
	"f": KindFunction,
	"t": KindType,
	"d": KindField,
	"m": KindMethod,
}

// KindFromCode returns the kind for a data-kind marker, or KindUnknown.
func KindFromCode(code string) Kind {
	if k, ok := kindCodes[code]; ok {
		return k
	}
	return KindUnknown
}

// RawIdentifier is an identifying token found on the page together with
// the category marker of its nearest enclosing container. KindCode is empty
// when no container carries a marker.
type RawIdentifier struct {
	ID       string
	KindCode string
}

// IdentifierSource lists the identifying tokens of a page in document order.
type IdentifierSource interface {
	Identifiers(ctx context.Context) ([]RawIdentifier, error)
}

// IdentifierEntry is one navigable symbol of the page.
type IdentifierEntry struct {
	Text      string
	LowerText string
	Kind      Kind
	Anchor    string
}

// Href returns the in-page link to the entry.
func (e IdentifierEntry) Href() string {
	return "#" + e.Anchor
}

// Index is the sorted, immutable list of a page's identifiers.
type Index struct {
	entries []IdentifierEntry
}

// publicIDRe accepts ids with no leading underscore and no hyphen: the
// exported, atomic symbols. Compound and anchor ids are rejected.
var publicIDRe = regexp.MustCompile(`^[^_][^-]*$`)

// IsIndexable reports whether id names a symbol the finder should index.
func IsIndexable(id string) bool {
	return publicIDRe.MatchString(id)
}

// NewIndex builds an Index from raws, keeping only indexable ids and
// sorting case-insensitively. Entries that compare equal keep their
// document order.
func NewIndex(raws []RawIdentifier) *Index {
	entries := make([]IdentifierEntry, 0, len(raws))
	for _, raw := range raws {
		if !IsIndexable(raw.ID) {
			continue
		}
		entries = append(entries, IdentifierEntry{
			Text:      raw.ID,
			LowerText: strings.ToLower(raw.ID),
			Kind:      KindFromCode(raw.KindCode),
			Anchor:    raw.ID,
		})
	}

	slices.SortStableFunc(entries, func(a, b IdentifierEntry) int {
		return strings.Compare(a.LowerText, b.LowerText)
	})

	return &Index{entries: entries}
}

// BuildIndex reads the identifiers of src and builds an Index from them.
func BuildIndex(ctx context.Context, src IdentifierSource) (*Index, error) {
	raws, err := src.Identifiers(ctx)
	if err != nil {
		return nil, err
	}
	return NewIndex(raws), nil
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// At returns the entry at i.
func (idx *Index) At(i int) IdentifierEntry {
	return idx.entries[i]
}

// Entries returns a copy of the entries in index order.
func (idx *Index) Entries() []IdentifierEntry {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.entries)
}
