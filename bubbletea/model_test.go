package bubbletea_test

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/docpage"
	"github.com/fwojciec/docpage/bubbletea"
	"github.com/fwojciec/docpage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	anchors []string
}

func (r *recorder) Navigate(_ context.Context, anchor string) error {
	r.anchors = append(r.anchors, anchor)
	return nil
}

func newModel(t *testing.T, nav docpage.Navigator, ids ...string) (*bubbletea.Model, *docpage.Finder) {
	t.Helper()
	raws := make([]docpage.RawIdentifier, len(ids))
	for i, id := range ids {
		raws[i] = docpage.RawIdentifier{ID: id, KindCode: "f"}
	}
	layout := &docpage.FixedLayout{Row: 1, View: 10}
	finder := docpage.NewFinder(mock.StaticSource(raws...), nav, layout)
	require.NoError(t, finder.Open(context.Background()))
	return bubbletea.NewModel(context.Background(), finder, layout), finder
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_Init(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, &recorder{}, "Get")

	assert.NotNil(t, m.Init())
}

func TestModel_Update_Typing(t *testing.T) {
	t.Parallel()

	m, finder := newModel(t, &recorder{}, "Get", "GetAll", "Set")

	typeText(m, "get")

	assert.Equal(t, "get", finder.State().Filter)
	require.Len(t, finder.Visible(), 2)
	assert.Equal(t, 0, finder.Active())
}

func TestModel_Update_Navigation(t *testing.T) {
	t.Parallel()

	t.Run("moves with arrow keys", func(t *testing.T) {
		t.Parallel()

		m, finder := newModel(t, &recorder{}, "A", "B", "C")

		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 2, finder.Active())

		m.Update(tea.KeyMsg{Type: tea.KeyUp})
		assert.Equal(t, 1, finder.Active())
	})

	t.Run("arrow keys do not edit the filter", func(t *testing.T) {
		t.Parallel()

		m, finder := newModel(t, &recorder{}, "A", "B")

		m.Update(tea.KeyMsg{Type: tea.KeyDown})

		assert.Equal(t, "", finder.State().Filter)
	})
}

func TestModel_Update_Commit(t *testing.T) {
	t.Parallel()

	t.Run("navigates to active entry and quits", func(t *testing.T) {
		t.Parallel()

		nav := &recorder{}
		m, finder := newModel(t, nav, "Get", "GetAll", "Set")
		typeText(m, "get")
		m.Update(tea.KeyMsg{Type: tea.KeyDown})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.True(t, isQuit(cmd))
		assert.Equal(t, []string{"GetAll"}, nav.anchors)
		assert.False(t, finder.IsOpen())
	})

	t.Run("stays open when nothing matches", func(t *testing.T) {
		t.Parallel()

		nav := &recorder{}
		m, finder := newModel(t, nav, "Get")
		typeText(m, "zz")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.False(t, isQuit(cmd))
		assert.Empty(t, nav.anchors)
		assert.True(t, finder.IsOpen())
	})

	t.Run("quits with navigation error", func(t *testing.T) {
		t.Parallel()

		nav := &mock.Navigator{
			NavigateFn: func(context.Context, string) error { return errors.New("nowhere") },
		}
		m, _ := newModel(t, nav, "Get")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.True(t, isQuit(cmd))
		assert.EqualError(t, m.Err(), "nowhere")
	})
}

func TestModel_Update_Close(t *testing.T) {
	t.Parallel()

	nav := &recorder{}
	m, finder := newModel(t, nav, "Get")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, isQuit(cmd))
	assert.False(t, finder.IsOpen())
	assert.Empty(t, nav.anchors)
}

func TestModel_Update_Mouse(t *testing.T) {
	t.Parallel()

	t.Run("click selects the entry under the pointer", func(t *testing.T) {
		t.Parallel()

		nav := &recorder{}
		m, _ := newModel(t, nav, "A", "B", "C")

		_, cmd := m.Update(tea.MouseMsg{X: 1, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

		assert.True(t, isQuit(cmd))
		assert.Equal(t, []string{"C"}, nav.anchors)
	})

	t.Run("ignores clicks outside the list", func(t *testing.T) {
		t.Parallel()

		nav := &recorder{}
		m, finder := newModel(t, nav, "A")

		m.Update(tea.MouseMsg{Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
		m.Update(tea.MouseMsg{Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

		assert.Empty(t, nav.anchors)
		assert.True(t, finder.IsOpen())
	})
}

func TestModel_Update_WindowSize(t *testing.T) {
	t.Parallel()

	layout := &docpage.FixedLayout{Row: 1, View: 10}
	finder := docpage.NewFinder(mock.StaticSource(), &recorder{}, layout)
	require.NoError(t, finder.Open(context.Background()))
	m := bubbletea.NewModel(context.Background(), finder, layout)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, 21, layout.View)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	assert.Equal(t, 1, layout.View)
}

func TestModel_View(t *testing.T) {
	t.Parallel()

	t.Run("lists visible entries with kinds", func(t *testing.T) {
		t.Parallel()

		m, _ := newModel(t, &recorder{}, "Get", "GetAll", "Set")
		typeText(m, "get")

		view := m.View()

		assert.Contains(t, view, "Jump to identifier")
		assert.Contains(t, view, "All")
		assert.Contains(t, view, "function")
		assert.NotContains(t, view, "Set")
		assert.Contains(t, view, "2/3")
	})

	t.Run("shows only rows inside the viewport", func(t *testing.T) {
		t.Parallel()

		layout := &docpage.FixedLayout{Row: 1, View: 2}
		finder := docpage.NewFinder(mock.StaticSource(
			docpage.RawIdentifier{ID: "Alpha"},
			docpage.RawIdentifier{ID: "Beta"},
			docpage.RawIdentifier{ID: "Gamma"},
			docpage.RawIdentifier{ID: "Delta"},
		), &recorder{}, layout)
		require.NoError(t, finder.Open(context.Background()))
		m := bubbletea.NewModel(context.Background(), finder, layout)

		for range 3 {
			m.Update(tea.KeyMsg{Type: tea.KeyDown})
		}
		view := m.View()

		assert.NotContains(t, view, "Alpha")
		assert.NotContains(t, view, "Beta")
		assert.Contains(t, view, "Delta")
		assert.Contains(t, view, "Gamma")
	})

	t.Run("reports empty result", func(t *testing.T) {
		t.Parallel()

		m, _ := newModel(t, &recorder{}, "Get")
		typeText(m, "xyz")

		assert.Contains(t, m.View(), "No identifiers match")
	})
}
