package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/docpage"
	"github.com/fwojciec/docpage/bubbletea"
	"github.com/fwojciec/docpage/fs"
	"github.com/fwojciec/docpage/goquery"
	"github.com/fwojciec/docpage/htmltomarkdown"
	dochttp "github.com/fwojciec/docpage/http"
	"github.com/fwojciec/docpage/readability"
	"github.com/fwojciec/docpage/rod"
	docslog "github.com/fwojciec/docpage/slog"
	"github.com/fwojciec/docpage/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher loads pages. Defaults to HTTP for http(s) URLs and the local
	// filesystem otherwise. Set before calling Run() to override.
	Fetcher docpage.Fetcher

	// Converter, Extractors and NewStore shape the output of the timeago
	// command.
	Converter  docpage.Converter
	Extractors map[string]docpage.Extractor
	NewStore   func(dir string) docpage.PageStore

	// Overlay runs the interactive finder. Set before calling Run() to
	// override the terminal UI.
	Overlay OverlayFunc
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Fetcher: &routingFetcher{
			remote: dochttp.NewFetcher(
				dochttp.WithLimiter(dochttp.NewDomainLimiter(1.0)),
				dochttp.WithRetryDelays(dochttp.DefaultRetryDelays()),
			),
			local: fs.NewFetcher(),
		},
		Converter: htmltomarkdown.NewConverter(),
		Extractors: map[string]docpage.Extractor{
			"trafilatura": trafilatura.NewExtractor(),
			"readability": readability.NewExtractor(),
		},
		NewStore: func(dir string) docpage.PageStore {
			return fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
		},
		Overlay: runOverlay,
	}
}

// Close releases the fetcher.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docpage"),
		kong.Description("Humanize timestamps and jump to identifiers in documentation pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
		kong.Vars{"time_selector": goquery.DefaultTimeSelector},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docpage --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	handler := slog.DiscardHandler
	if cli.Verbose {
		handler = slog.NewTextHandler(stderr, nil)
	}
	deps.Logger = slog.New(handler)

	fetcher := m.Fetcher
	if cli.Browser {
		browser := rod.NewFetcher()
		defer browser.Close()
		fetcher = &routingFetcher{remote: browser, local: fs.NewFetcher()}
	}
	deps.Fetcher = docslog.NewLoggingFetcher(fetcher, deps.Logger)
	deps.Converter = m.Converter
	deps.Extractors = m.Extractors
	deps.NewStore = m.NewStore
	deps.Overlay = m.Overlay
	deps.Now = time.Now

	return kongCtx.Run(deps)
}

// routingFetcher sends http(s) URLs to remote and everything else to local.
type routingFetcher struct {
	remote docpage.Fetcher
	local  docpage.Fetcher
}

func (f *routingFetcher) Fetch(ctx context.Context, location string) (string, error) {
	if fs.IsRemote(location) {
		return f.remote.Fetch(ctx, location)
	}
	return f.local.Fetch(ctx, location)
}

func (f *routingFetcher) Close() error {
	if err := f.remote.Close(); err != nil {
		return err
	}
	return f.local.Close()
}

// runOverlay runs the terminal finder on stderr so stdout stays free for
// the chosen URL.
func runOverlay(ctx context.Context, finder *docpage.Finder, layout *docpage.FixedLayout) error {
	m := bubbletea.NewModel(ctx, finder, layout)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run finder: %w", err)
	}
	return m.Err()
}
