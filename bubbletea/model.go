// Package bubbletea provides a terminal rendition of the quick identifier
// finder: a filter input over the page's identifier list, driven by the
// keyboard and mouse.
package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/docpage"
)

// Lines above and below the list.
const (
	headerLines = 2
	footerLines = 1
)

// KeyMap defines key bindings for the finder overlay.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Commit key.Binding
	Close  key.Binding
}

// Keys are the default bindings.
var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "jump"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "close"),
	),
}

// Model drives an open docpage.Finder from terminal input. The program
// quits once the finder closes, by commit or by cancel.
type Model struct {
	ctx    context.Context
	finder *docpage.Finder
	layout *docpage.FixedLayout
	input  textinput.Model
	width  int
	err    error
}

// NewModel returns a Model over finder. layout must be the Layout the
// finder was created with; its viewport follows the terminal height.
func NewModel(ctx context.Context, finder *docpage.Finder, layout *docpage.FixedLayout) *Model {
	input := textinput.New()
	input.Placeholder = "Filter identifiers..."
	input.Prompt = "> "
	input.Focus()

	return &Model{
		ctx:    ctx,
		finder: finder,
		layout: layout,
		input:  input,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Err returns the navigation error that ended the session, if any.
func (m *Model) Err() error { return m.err }

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.layout.View = max(1, msg.Height-headerLines-footerLines)
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		row := msg.Y - headerLines
		if row < 0 || row >= m.layout.View {
			return m, nil
		}
		i := m.finder.ScrollTop()/max(1, m.layout.Row) + row
		if i >= len(m.finder.Visible()) {
			return m, nil
		}
		return m.finish(m.finder.Select(m.ctx, i))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Close):
			m.finder.Close()
			return m, tea.Quit

		case key.Matches(msg, Keys.Up):
			m.finder.Move(-1)
			return m, nil

		case key.Matches(msg, Keys.Down):
			m.finder.Move(1)
			return m, nil

		case key.Matches(msg, Keys.Commit):
			return m.finish(m.finder.Commit(m.ctx))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.finder.Filter(m.input.Value())
	return m, cmd
}

func (m *Model) finish(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	if !m.finder.IsOpen() {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the overlay.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Jump to identifier"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	visible := m.finder.Visible()
	first := m.finder.ScrollTop() / max(1, m.layout.Row)
	last := min(len(visible), first+m.layout.View)
	for i := first; i < last; i++ {
		b.WriteString(m.renderEntry(visible[i], i == m.finder.Active()))
		b.WriteString("\n")
	}
	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("No identifiers match"))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(docpage.ErrorMessage(m.err)))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s",
		helpKeyStyle.Render("↑/↓"), mutedStyle.Render("move"),
		helpKeyStyle.Render("enter"), mutedStyle.Render("jump"),
		helpKeyStyle.Render("esc"), mutedStyle.Render("close"),
		mutedStyle.Render(fmt.Sprintf("%d/%d", len(visible), m.finder.Index().Len())),
	))
	return b.String()
}

func (m *Model) renderEntry(e docpage.VisibleEntry, active bool) string {
	var b strings.Builder
	for _, seg := range e.Segments() {
		if seg.Match {
			b.WriteString(matchStyle.Render(seg.Text))
			continue
		}
		b.WriteString(seg.Text)
	}
	b.WriteString(" ")
	b.WriteString(kindStyle.Render(string(e.Kind)))

	line := b.String()
	if active {
		return activeStyle.Render(line)
	}
	return line
}
