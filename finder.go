package docpage

import (
	"context"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Navigator moves the host page to an in-page anchor.
type Navigator interface {
	Navigate(ctx context.Context, anchor string) error
}

// Layout reports the rendered geometry of the finder's list container.
type Layout interface {
	// RowHeight returns the height of visible row i.
	RowHeight(i int) int

	// ViewHeight returns the height of the container's viewport.
	ViewHeight() int
}

// FixedLayout is a Layout whose rows all have the same height.
type FixedLayout struct {
	Row  int
	View int
}

// RowHeight returns l.Row.
func (l *FixedLayout) RowHeight(int) int { return l.Row }

// ViewHeight returns l.View.
func (l *FixedLayout) ViewHeight() int { return l.View }

// Span is a matched byte range [Start, End) of an entry's display text.
type Span struct {
	Start int
	End   int
}

// Segment is a run of display text that either matched the filter or not.
type Segment struct {
	Text  string
	Match bool
}

// VisibleEntry is an index entry that passed the current filter, with the
// spans that matched it.
type VisibleEntry struct {
	IdentifierEntry
	Matches []Span
}

// Segments splits the display text into matched and unmatched runs.
func (e VisibleEntry) Segments() []Segment {
	var segs []Segment
	pos := 0
	for _, m := range e.Matches {
		if m.Start > pos {
			segs = append(segs, Segment{Text: e.Text[pos:m.Start]})
		}
		segs = append(segs, Segment{Text: e.Text[m.Start:m.End], Match: true})
		pos = m.End
	}
	if pos < len(e.Text) {
		segs = append(segs, Segment{Text: e.Text[pos:]})
	}
	return segs
}

// HTML renders the entry as list-item markup: matched runs in <b>, followed
// by the kind in <i>.
func (e VisibleEntry) HTML() string {
	var b strings.Builder
	for _, seg := range e.Segments() {
		if seg.Match {
			b.WriteString("<b>")
			b.WriteString(html.EscapeString(seg.Text))
			b.WriteString("</b>")
			continue
		}
		b.WriteString(html.EscapeString(seg.Text))
	}
	b.WriteString(" <i>")
	b.WriteString(string(e.Kind))
	b.WriteString("</i>")
	return b.String()
}

// FinderState is a snapshot of the finder's view.
type FinderState struct {
	Filter    string
	Visible   []VisibleEntry
	Active    int
	ScrollTop int
}

// FinderOp names an operation on the finder overlay.
type FinderOp int

// FinderOp constants.
const (
	FinderOpen FinderOp = iota
	FinderClose
	FinderFilter
	FinderMove
	FinderCommit
	FinderSelect
)

// String returns the operation's name.
func (op FinderOp) String() string {
	switch op {
	case FinderOpen:
		return "open"
	case FinderClose:
		return "close"
	case FinderFilter:
		return "filter"
	case FinderMove:
		return "move"
	case FinderCommit:
		return "commit"
	case FinderSelect:
		return "select"
	}
	return "FinderOp(" + strconv.Itoa(int(op)) + ")"
}

// ParseFinderOp maps an operation name to a FinderOp. Unknown names are an
// EINVALID error.
func ParseFinderOp(name string) (FinderOp, error) {
	switch name {
	case "open":
		return FinderOpen, nil
	case "close":
		return FinderClose, nil
	case "filter":
		return FinderFilter, nil
	case "move":
		return FinderMove, nil
	case "commit":
		return FinderCommit, nil
	case "select":
		return FinderSelect, nil
	}
	return 0, Errorf(EINVALID, "unknown function name %q for finder", name)
}

// Finder is the quick identifier finder overlay. The index is built from
// its source on the first Open and reused for the Finder's lifetime.
//
// A Finder is not safe for concurrent use.
type Finder struct {
	source IdentifierSource
	nav    Navigator
	layout Layout

	index     *Index
	open      bool
	filter    string
	visible   []VisibleEntry
	active    int
	scrollTop int
}

// NewFinder returns a closed Finder. A nil layout uses single-height rows in
// a ten-row viewport.
func NewFinder(source IdentifierSource, nav Navigator, layout Layout) *Finder {
	if layout == nil {
		layout = &FixedLayout{Row: 1, View: 10}
	}
	return &Finder{
		source: source,
		nav:    nav,
		layout: layout,
		active: -1,
	}
}

// Do dispatches op. arg is the filter text for filter, the signed delta for
// move, and the visible position for select; other operations ignore it.
func (f *Finder) Do(ctx context.Context, op FinderOp, arg string) error {
	switch op {
	case FinderOpen:
		return f.Open(ctx)
	case FinderClose:
		f.Close()
		return nil
	case FinderFilter:
		f.Filter(arg)
		return nil
	case FinderMove:
		delta, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return Errorf(EINVALID, "invalid move delta %q", arg)
		}
		f.Move(delta)
		return nil
	case FinderCommit:
		return f.Commit(ctx)
	case FinderSelect:
		i, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return Errorf(EINVALID, "invalid selection %q", arg)
		}
		return f.Select(ctx, i)
	default:
		return Errorf(EINVALID, "unknown function %s for finder", op)
	}
}

// Open shows the overlay. The first call builds the index; every call
// resets the filter to empty and makes the first entry active.
func (f *Finder) Open(ctx context.Context) error {
	if f.index == nil {
		idx, err := BuildIndex(ctx, f.source)
		if err != nil {
			return err
		}
		f.index = idx
	}
	f.open = true
	f.apply("")
	return nil
}

// Close hides the overlay. Index and filter state are left as they are.
func (f *Finder) Close() {
	f.open = false
}

// Filter narrows the visible list to entries whose text contains text,
// ignoring case. Re-applying the current filter is a no-op.
func (f *Finder) Filter(text string) {
	if strings.EqualFold(text, f.filter) {
		return
	}
	f.apply(text)
}

func (f *Finder) apply(text string) {
	f.filter = text
	f.active = -1

	var re *regexp.Regexp
	if text != "" {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(strings.ToValidUTF8(text, "�")))
	}

	var visible []VisibleEntry
	if f.index != nil {
		visible = make([]VisibleEntry, 0, len(f.index.entries))
		for _, e := range f.index.entries {
			if re == nil {
				visible = append(visible, VisibleEntry{IdentifierEntry: e})
				continue
			}
			locs := re.FindAllStringIndex(e.Text, -1)
			if locs == nil {
				continue
			}
			matches := make([]Span, len(locs))
			for i, loc := range locs {
				matches[i] = Span{Start: loc[0], End: loc[1]}
			}
			visible = append(visible, VisibleEntry{IdentifierEntry: e, Matches: matches})
		}
	}
	f.visible = visible

	f.scrollTop = 0
	if len(f.visible) > 0 {
		f.active = 0
	}
}

// Move shifts the active entry by delta, clamped to the visible list, and
// scrolls so the active row is fully in view.
func (f *Finder) Move(delta int) {
	n := len(f.visible)
	if n == 0 {
		return
	}

	f.active += delta
	switch {
	case f.active < 0:
		f.active = 0
		f.scrollTop = 0
	case f.active >= n:
		f.active = n - 1
		f.scrollTop = max(0, f.contentHeight()-f.layout.ViewHeight())
	default:
		view := f.layout.ViewHeight()
		top := f.rowTop(f.active) - f.scrollTop
		bottom := top + f.layout.RowHeight(f.active)
		if top <= 0 {
			f.scrollTop += top
		} else if bottom >= view {
			f.scrollTop += bottom - view
		}
	}
}

// Commit navigates to the active entry and closes the overlay. It does
// nothing when no entry is active.
func (f *Finder) Commit(ctx context.Context) error {
	if f.active < 0 {
		return nil
	}
	return f.choose(ctx, f.visible[f.active])
}

// Select navigates to the visible entry at i, active or not, and closes
// the overlay.
func (f *Finder) Select(ctx context.Context, i int) error {
	if i < 0 || i >= len(f.visible) {
		return Errorf(EINVALID, "selection %d out of range [0, %d)", i, len(f.visible))
	}
	return f.choose(ctx, f.visible[i])
}

func (f *Finder) choose(ctx context.Context, e VisibleEntry) error {
	if err := f.nav.Navigate(ctx, e.Anchor); err != nil {
		return err
	}
	f.Close()
	return nil
}

// IsOpen reports whether the overlay is shown.
func (f *Finder) IsOpen() bool { return f.open }

// Index returns the index, or nil before the first Open.
func (f *Finder) Index() *Index { return f.index }

// Active returns the position of the active entry, or -1.
func (f *Finder) Active() int { return f.active }

// ScrollTop returns the list container's scroll offset.
func (f *Finder) ScrollTop() int { return f.scrollTop }

// Visible returns the visible entries in index order.
func (f *Finder) Visible() []VisibleEntry {
	return append([]VisibleEntry(nil), f.visible...)
}

// ActiveEntry returns the active entry, if any.
func (f *Finder) ActiveEntry() (VisibleEntry, bool) {
	if f.active < 0 {
		return VisibleEntry{}, false
	}
	return f.visible[f.active], true
}

// State returns a snapshot of the current view.
func (f *Finder) State() FinderState {
	return FinderState{
		Filter:    f.filter,
		Visible:   f.Visible(),
		Active:    f.active,
		ScrollTop: f.scrollTop,
	}
}

func (f *Finder) rowTop(i int) int {
	top := 0
	for j := 0; j < i; j++ {
		top += f.layout.RowHeight(j)
	}
	return top
}

func (f *Finder) contentHeight() int {
	return f.rowTop(len(f.visible))
}
