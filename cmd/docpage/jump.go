package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/docpage"
	"github.com/fwojciec/docpage/goquery"
	docslog "github.com/fwojciec/docpage/slog"
)

// Run executes the jump command.
func (c *JumpCmd) Run(deps *Dependencies) error {
	raw, err := deps.Fetcher.Fetch(deps.Ctx, c.Page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	doc, err := goquery.Parse(raw)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	nav := &anchorNavigator{page: c.Page}
	layout := &docpage.FixedLayout{Row: 1, View: max(1, c.Height)}
	finder := docpage.NewFinder(
		docslog.NewLoggingIdentifierSource(doc, deps.Logger),
		docslog.NewLoggingNavigator(nav, deps.Logger),
		layout,
	)

	if err := finder.Open(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if c.Interactive {
		err = deps.Overlay(deps.Ctx, finder, layout)
	} else {
		err = c.script(deps.Ctx, finder)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if nav.url == "" {
		if finder.IsOpen() && !c.Interactive {
			printVisible(deps, finder)
		}
		return nil
	}

	fmt.Fprintln(deps.Stdout, nav.url)
	if c.Copy {
		if err := clipboard.WriteAll(nav.url); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: copy to clipboard: %s\n", err)
		}
	}
	return nil
}

// script runs each --do entry in order. An entry is an operation name
// optionally followed by a space and its argument.
func (c *JumpCmd) script(ctx context.Context, finder *docpage.Finder) error {
	for _, entry := range c.Do {
		name, arg, _ := strings.Cut(strings.TrimSpace(entry), " ")
		op, err := docpage.ParseFinderOp(name)
		if err != nil {
			return err
		}
		if err := finder.Do(ctx, op, arg); err != nil {
			return err
		}
	}
	return nil
}

// printVisible lists the visible entries, marking the active one.
func printVisible(deps *Dependencies, finder *docpage.Finder) {
	active := finder.Active()
	for i, e := range finder.Visible() {
		marker := " "
		if i == active {
			marker = ">"
		}
		fmt.Fprintf(deps.Stdout, "%s %s (%s)\n", marker, e.Text, e.Kind)
	}
}

// anchorNavigator records the page URL with the chosen anchor as fragment.
type anchorNavigator struct {
	page string
	url  string
}

func (n *anchorNavigator) Navigate(_ context.Context, anchor string) error {
	base, _, _ := strings.Cut(n.page, "#")
	n.url = base + "#" + anchor
	return nil
}
