package mock

import "github.com/fwojciec/docpage"

var _ docpage.TimeElement = (*TimeElement)(nil)

// TimeElement is an in-memory docpage.TimeElement. Time marks it as a
// <time> element.
type TimeElement struct {
	ID      string
	Time    bool
	Attrs   map[string]string
	Content string

	// SetTextCalls counts calls to SetText.
	SetTextCalls int
}

// NewTimeElement returns a TimeElement with the given key and attributes.
func NewTimeElement(id string, isTime bool, content string, attrs map[string]string) *TimeElement {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &TimeElement{ID: id, Time: isTime, Attrs: attrs, Content: content}
}

func (e *TimeElement) Key() string  { return e.ID }
func (e *TimeElement) IsTime() bool { return e.Time }

func (e *TimeElement) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

func (e *TimeElement) SetAttr(name, value string) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[name] = value
}

func (e *TimeElement) Text() string { return e.Content }

func (e *TimeElement) SetText(text string) {
	e.Content = text
	e.SetTextCalls++
}
