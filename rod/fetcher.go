// Package rod fetches pages through headless Chrome so that timestamps and
// identifiers inserted by scripts are present in the returned HTML.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/docpage"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var _ docpage.Fetcher = (*Fetcher)(nil)

// Defaults.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultMaxPages     = 75
)

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch, including navigation and load.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithMaxPages sets how many pages a browser serves before it is replaced
// with a fresh one.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) { f.maxPages = n }
}

// Fetcher retrieves rendered HTML using Chrome. The browser is launched on
// the first Fetch and recycled every maxPages pages, because Chrome's memory
// use grows with each page it has served. A browser due for recycling keeps
// its open pages until they finish.
//
// Fetcher is safe for concurrent use.
type Fetcher struct {
	timeout  time.Duration
	maxPages int

	mu       sync.Mutex
	idle     *sync.Cond
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int
	inflight int
	closed   bool
}

// NewFetcher returns a Fetcher. Close must be called to shut the browser
// down.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	f.idle = sync.NewCond(&f.mu)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to url, waits for the load event and returns the DOM
// serialized as HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}
	defer f.release()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}

// acquire returns the current browser, launching or recycling it first when
// needed. A browser that has served maxPages pages is recycled only once
// none of its pages are open. Every successful acquire must be paired with
// release.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		if f.closed {
			return nil, docpage.Errorf(docpage.EINVALID, "fetcher closed")
		}
		if f.browser == nil || f.served < f.maxPages || f.inflight == 0 {
			break
		}
		f.idle.Wait()
	}

	switch {
	case f.browser == nil:
		browser, l, err := launch()
		if err != nil {
			return nil, err
		}
		f.browser, f.launcher, f.served = browser, l, 0
	case f.served >= f.maxPages:
		f.recycle()
	}
	f.served++
	f.inflight++
	return f.browser, nil
}

// release marks a page acquired from the current browser as closed.
func (f *Fetcher) release() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inflight--
	if f.inflight == 0 {
		f.idle.Broadcast()
	}
}

// recycle replaces the browser with a fresh one. If the launch fails the old
// browser keeps serving for another maxPages pages. recycle must be called
// with mu held and no pages open.
func (f *Fetcher) recycle() {
	browser, l, err := launch()
	if err != nil {
		f.served = 0
		return
	}
	_ = f.shutdown()
	f.browser, f.launcher, f.served = browser, l, 0
}

func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}

// shutdown must be called with mu held.
func (f *Fetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

// Close shuts down the browser. Close is safe to call more than once.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.idle.Broadcast()
	return f.shutdown()
}
