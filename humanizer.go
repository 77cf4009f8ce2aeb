package docpage

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TimeElement is a time-bearing element of the host page.
type TimeElement interface {
	// Key returns a stable identity for the element.
	Key() string

	// IsTime reports whether the element is a <time> element, which carries
	// its instant in the datetime attribute instead of title.
	IsTime() bool

	Attr(name string) (string, bool)
	SetAttr(name, value string)
	Text() string
	SetText(text string)
}

// TimeRecord is the parsed instant cached for one tracked element.
// Valid is false when the element's raw timestamp could not be parsed.
type TimeRecord struct {
	Instant time.Time
	Valid   bool
}

// TimeagoOp names an operation a host page can invoke on its time elements.
type TimeagoOp int

// TimeagoOp constants.
const (
	TimeagoInit TimeagoOp = iota
	TimeagoUpdate
)

// String returns the operation's name.
func (op TimeagoOp) String() string {
	switch op {
	case TimeagoInit:
		return "init"
	case TimeagoUpdate:
		return "update"
	}
	return "TimeagoOp(" + strconv.Itoa(int(op)) + ")"
}

// ParseTimeagoOp maps an operation name to a TimeagoOp. The empty name is
// init. Any other unknown name is an EINVALID error.
func ParseTimeagoOp(name string) (TimeagoOp, error) {
	switch name {
	case "", "init":
		return TimeagoInit, nil
	case "update":
		return TimeagoUpdate, nil
	}
	return 0, Errorf(EINVALID, "unknown function name %q for timeago", name)
}

// HumanizerOption configures a Humanizer.
type HumanizerOption func(*Humanizer)

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) HumanizerOption {
	return func(h *Humanizer) {
		h.now = now
	}
}

// WithLocation sets the location used for zoneless timestamps and for
// locale tooltips. Defaults to time.Local.
func WithLocation(loc *time.Location) HumanizerOption {
	return func(h *Humanizer) {
		h.loc = loc
	}
}

// WithRefreshHook sets a function Run calls after each Tick. Run stops and
// returns the first error fn returns.
func WithRefreshHook(fn func() error) HumanizerOption {
	return func(h *Humanizer) {
		h.onRefresh = fn
	}
}

// Humanizer keeps the text of subscribed time elements in sync with the
// current time. It owns the record table for every element it has seen.
// All methods are safe for concurrent use; each runs to completion before
// another starts.
type Humanizer struct {
	cfg       Config
	now       func() time.Time
	loc       *time.Location
	onRefresh func() error

	mu         sync.Mutex
	records    map[string]TimeRecord
	subscribed map[string]TimeElement
	order      []string
}

// NewHumanizer returns a Humanizer using a copy of cfg.
func NewHumanizer(cfg Config, opts ...HumanizerOption) *Humanizer {
	if cfg.TitleLayout == "" {
		cfg.TitleLayout = DefaultTitleLayout
	}
	h := &Humanizer{
		cfg:        cfg,
		now:        time.Now,
		loc:        time.Local,
		records:    make(map[string]TimeRecord),
		subscribed: make(map[string]TimeElement),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Config returns the Humanizer's configuration.
func (h *Humanizer) Config() Config {
	return h.cfg
}

// Do dispatches op over elems. arg is the raw timestamp for update and is
// ignored by init.
func (h *Humanizer) Do(op TimeagoOp, elems []TimeElement, arg string) error {
	switch op {
	case TimeagoInit:
		h.Init(elems...)
		return nil
	case TimeagoUpdate:
		for _, elem := range elems {
			h.Update(elem, arg)
		}
		return nil
	default:
		return Errorf(EINVALID, "unknown function %s for timeago", op)
	}
}

// Init subscribes elems to periodic refresh and renders each immediately.
// Subscribing an element twice has no further effect.
func (h *Humanizer) Init(elems ...TimeElement) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, elem := range elems {
		key := elem.Key()
		if _, ok := h.subscribed[key]; !ok {
			h.subscribed[key] = elem
			h.order = append(h.order, key)
		}
		h.refresh(elem)
	}
}

// Update replaces the tracked timestamp of elem with raw and re-renders it.
// An unparseable raw value leaves the element's text unchanged.
func (h *Humanizer) Update(elem TimeElement, raw string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records[elem.Key()] = h.parse(raw)
	h.refresh(elem)
}

// Tick re-renders every subscribed element in subscription order.
func (h *Humanizer) Tick() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, key := range h.order {
		h.refresh(h.subscribed[key])
	}
}

// Run calls Tick every RefreshInterval until ctx is done, followed by the
// refresh hook if one is set. With a non-positive interval it returns nil
// immediately.
func (h *Humanizer) Run(ctx context.Context) error {
	if h.cfg.RefreshInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(h.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			h.Tick()
			if h.onRefresh == nil {
				continue
			}
			if err := h.onRefresh(); err != nil {
				return err
			}
		}
	}
}

// Remove forgets elem: its record is dropped and it is no longer refreshed.
func (h *Humanizer) Remove(elem TimeElement) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := elem.Key()
	delete(h.records, key)
	if _, ok := h.subscribed[key]; !ok {
		return
	}
	delete(h.subscribed, key)
	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Record returns the cached record for elem, if any.
func (h *Humanizer) Record(elem TimeElement) (TimeRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec, ok := h.records[elem.Key()]
	return rec, ok
}

// Len returns the number of subscribed elements.
func (h *Humanizer) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.order)
}

// refresh must be called with h.mu held.
func (h *Humanizer) refresh(elem TimeElement) {
	rec := h.prepare(elem)
	if !rec.Valid {
		return
	}
	elem.SetText(InWords(rec.Instant, h.now(), h.cfg))
}

// prepare returns the element's record, creating it on first sight. Creating
// the record also stores the element's original text as its tooltip.
func (h *Humanizer) prepare(elem TimeElement) TimeRecord {
	key := elem.Key()
	if rec, ok := h.records[key]; ok {
		return rec
	}

	rec := h.parse(rawTimestamp(elem))
	h.records[key] = rec

	text := strings.TrimSpace(elem.Text())
	if h.cfg.LocaleTitle {
		if rec.Valid {
			elem.SetAttr("title", rec.Instant.In(h.loc).Format(h.cfg.TitleLayout))
		}
	} else if text != "" && !(elem.IsTime() && hasTitle(elem)) {
		elem.SetAttr("title", text)
	}

	return rec
}

func (h *Humanizer) parse(raw string) TimeRecord {
	t, err := ParseInLocation(raw, h.loc)
	if err != nil {
		return TimeRecord{}
	}
	return TimeRecord{Instant: t, Valid: true}
}

// rawTimestamp reads the machine-readable instant of elem: the datetime
// attribute for <time> elements, the title attribute otherwise.
func rawTimestamp(elem TimeElement) string {
	name := "title"
	if elem.IsTime() {
		name = "datetime"
	}
	v, _ := elem.Attr(name)
	return v
}

func hasTitle(elem TimeElement) bool {
	v, ok := elem.Attr("title")
	return ok && v != ""
}
