package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docpage"
	"github.com/fwojciec/docpage/yaml"
)

// OverlayFunc runs an interactive session over an open finder until it
// closes.
type OverlayFunc func(ctx context.Context, finder *docpage.Finder, layout *docpage.FixedLayout) error

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Fetcher    docpage.Fetcher
	Converter  docpage.Converter
	Extractors map[string]docpage.Extractor
	NewStore   func(dir string) docpage.PageStore
	Overlay    OverlayFunc
	Now        func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log operations to stderr"`
	Browser bool `short:"b" help:"Render http(s) pages in headless Chrome before reading them"`

	Humanize HumanizeCmd `cmd:"" help:"Print a timestamp as a relative phrase"`
	Timeago  TimeagoCmd  `cmd:"" help:"Render the timestamps of documentation pages as relative phrases"`
	Jump     JumpCmd     `cmd:"" help:"Find an identifier on a documentation page"`
}

// HumanizeCmd is the "humanize" subcommand.
type HumanizeCmd struct {
	Timestamp   string `arg:"" help:"ISO-8601 timestamp"`
	Now         string `help:"Reference time instead of the current time"`
	AllowFuture bool   `short:"f" help:"Use from-now wording for future timestamps"`
	Locale      string `short:"l" env:"DOCPAGE_LOCALE" help:"YAML locale file"`
}

// TimeagoCmd is the "timeago" subcommand.
type TimeagoCmd struct {
	Pages       []string      `arg:"" name:"page" sep:"none" help:"Page file paths or http(s) URLs"`
	Output      string        `short:"o" xor:"dest" help:"Write pages into this directory instead of stdout"`
	DB          string        `name:"db" xor:"dest" help:"Store pages in this SQLite database instead of stdout"`
	Markdown    bool          `short:"m" help:"Write Markdown instead of HTML"`
	Extract     string        `short:"x" default:"none" enum:"none,trafilatura,readability" help:"Keep only the main content, using this extractor (${enum})"`
	Selector    string        `short:"s" default:"${time_selector}" help:"CSS selector of time elements"`
	Now         string        `help:"Reference time instead of the current time"`
	AllowFuture bool          `short:"f" help:"Use from-now wording for future timestamps"`
	Locale      string        `short:"l" env:"DOCPAGE_LOCALE" help:"YAML locale file"`
	LocaleTitle bool          `help:"Replace tooltips with the local date and time"`
	Concurrency int           `short:"c" default:"4" help:"Pages processed concurrently"`
	Watch       time.Duration `short:"w" help:"Reprint a single page to stdout at this interval until interrupted"`
}

// JumpCmd is the "jump" subcommand.
type JumpCmd struct {
	Page        string   `arg:"" help:"Page file path or http(s) URL"`
	Do          []string `short:"d" sep:"none" placeholder:"OP [ARG]" help:"Finder operation to run, e.g. \"filter Get\" (repeatable)"`
	Interactive bool     `short:"i" help:"Run the interactive finder"`
	Height      int      `default:"10" help:"Rows shown by the scripted finder"`
	Copy        bool     `help:"Copy the chosen URL to the clipboard"`
}

// humanizerConfig builds a one-shot render configuration.
func humanizerConfig(locale string, allowFuture, localeTitle bool) (docpage.Config, error) {
	cfg := docpage.DefaultConfig()
	cfg.RefreshInterval = 0
	cfg.AllowFuture = allowFuture
	cfg.LocaleTitle = localeTitle
	if locale != "" {
		s, err := yaml.LoadStrings(locale)
		if err != nil {
			return docpage.Config{}, err
		}
		cfg.Strings = s
	}
	return cfg, nil
}

// clock returns deps.Now, or a fixed clock when now is set.
func clock(deps *Dependencies, now string) (func() time.Time, error) {
	if now == "" {
		return deps.Now, nil
	}
	t, err := docpage.Parse(now)
	if err != nil {
		return nil, err
	}
	return func() time.Time { return t }, nil
}
