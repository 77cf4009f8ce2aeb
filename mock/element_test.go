package mock_test

import (
	"testing"

	"github.com/fwojciec/docpage"
	"github.com/fwojciec/docpage/mock"
	"github.com/stretchr/testify/assert"
)

func TestTimeElement_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ docpage.TimeElement = &mock.TimeElement{}
}

func TestTimeElement(t *testing.T) {
	t.Parallel()

	t.Run("stores attributes and text", func(t *testing.T) {
		t.Parallel()

		e := mock.NewTimeElement("e1", true, "July 17, 2008", nil)
		e.SetAttr("title", "tooltip")
		e.SetText("about an hour ago")

		v, ok := e.Attr("title")
		assert.True(t, ok)
		assert.Equal(t, "tooltip", v)
		assert.Equal(t, "about an hour ago", e.Text())
		assert.Equal(t, 1, e.SetTextCalls)
	})

	t.Run("reports missing attribute", func(t *testing.T) {
		t.Parallel()

		var e mock.TimeElement
		_, ok := e.Attr("datetime")
		assert.False(t, ok)
	})
}
