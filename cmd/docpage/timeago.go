package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/docpage"
	"github.com/fwojciec/docpage/goquery"
	"github.com/fwojciec/docpage/sqlite"
	"golang.org/x/sync/errgroup"
)

// Run executes the timeago command.
func (c *TimeagoCmd) Run(deps *Dependencies) error {
	cfg, err := humanizerConfig(c.Locale, c.AllowFuture, c.LocaleTitle)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	now, err := clock(deps, c.Now)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	format := docpage.FormatHTML
	if c.Markdown {
		format = docpage.FormatMarkdown
	}

	if c.Watch > 0 {
		if err := c.watch(deps, cfg, now, format); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
		return nil
	}

	pages := make([]docpage.RenderedPage, len(c.Pages))
	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(max(1, c.Concurrency))
	for i, location := range c.Pages {
		g.Go(func() error {
			page, err := c.render(gctx, deps, location, cfg, now, format)
			if err != nil {
				return fmt.Errorf("%s: %w", location, err)
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	var store docpage.PageStore
	dest := c.Output
	switch {
	case c.Output != "":
		store = deps.NewStore(c.Output)
	case c.DB != "":
		db := sqlite.NewDB(c.DB)
		if err := db.Open(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
		defer db.Close()
		store, dest = sqlite.NewPageStore(db), c.DB
	default:
		for _, page := range pages {
			fmt.Fprintln(deps.Stdout, page.Content)
		}
		return nil
	}

	if err := save(deps.Ctx, store, pages); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Saved %d pages to %s\n", len(pages), dest)
	return nil
}

// render fetches one page and replaces the text of its time elements with
// relative phrases.
func (c *TimeagoCmd) render(ctx context.Context, deps *Dependencies, location string, cfg docpage.Config, now func() time.Time, format docpage.Format) (docpage.RenderedPage, error) {
	doc, elems, err := c.load(ctx, deps, location)
	if err != nil {
		return docpage.RenderedPage{}, err
	}

	h := docpage.NewHumanizer(cfg, docpage.WithClock(now))
	h.Init(elems...)
	deps.Logger.Info("humanize", "url", location, "elements", len(elems))

	content, err := c.content(deps, doc, location, format)
	if err != nil {
		return docpage.RenderedPage{}, err
	}
	return docpage.RenderedPage{URL: location, Content: content, Format: format}, nil
}

// watch renders a single page to stdout, then reprints it after every
// refresh until the command's context is done.
func (c *TimeagoCmd) watch(deps *Dependencies, cfg docpage.Config, now func() time.Time, format docpage.Format) error {
	if len(c.Pages) != 1 || c.Output != "" || c.DB != "" {
		return docpage.Errorf(docpage.EINVALID, "--watch takes a single page and writes to stdout")
	}
	location := c.Pages[0]

	doc, elems, err := c.load(deps.Ctx, deps, location)
	if err != nil {
		return fmt.Errorf("%s: %w", location, err)
	}

	emit := func() error {
		content, err := c.content(deps, doc, location, format)
		if err != nil {
			return fmt.Errorf("%s: %w", location, err)
		}
		fmt.Fprintln(deps.Stdout, content)
		return nil
	}

	cfg.RefreshInterval = c.Watch
	h := docpage.NewHumanizer(cfg, docpage.WithClock(now), docpage.WithRefreshHook(emit))
	h.Init(elems...)
	deps.Logger.Info("watch", "url", location, "elements", len(elems), "interval", c.Watch)
	if err := emit(); err != nil {
		return err
	}

	if err := h.Run(deps.Ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// load fetches and parses one page and selects its time elements.
func (c *TimeagoCmd) load(ctx context.Context, deps *Dependencies, location string) (*goquery.Document, []docpage.TimeElement, error) {
	raw, err := deps.Fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, nil, err
	}

	doc, err := goquery.Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	return doc, doc.TimeElements(c.Selector), nil
}

// content serializes doc, keeping only the main content when an extractor
// is selected and converting to Markdown when format asks for it.
func (c *TimeagoCmd) content(deps *Dependencies, doc *goquery.Document, location string, format docpage.Format) (string, error) {
	content, err := doc.HTML()
	if err != nil {
		return "", err
	}
	if ext, ok := deps.Extractors[c.Extract]; ok {
		res, err := ext.Extract(content)
		if err != nil {
			return "", err
		}
		content = res.ContentHTML
	}
	if format == docpage.FormatMarkdown {
		content, err = deps.Converter.Convert(content, location)
		if err != nil {
			return "", err
		}
	}
	return content, nil
}

// save writes pages to store, committing only when every page was written.
func save(ctx context.Context, store docpage.PageStore, pages []docpage.RenderedPage) error {
	for i := range pages {
		if err := store.Save(ctx, &pages[i]); err != nil {
			_ = store.Abort()
			return err
		}
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return err
	}
	return nil
}
