package docpage_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docpage"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docpage.Errorf(docpage.EINVALID, "unknown function name %q for timeago", "bogus")

	assert.Equal(t, docpage.EINVALID, docpage.ErrorCode(err))
	assert.Equal(t, "unknown function name \"bogus\" for timeago", docpage.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docpage.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docpage.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading page: %w", docpage.Errorf(docpage.ENOTFOUND, "page not found"))

	assert.Equal(t, docpage.ENOTFOUND, docpage.ErrorCode(err))
	assert.Equal(t, "page not found", docpage.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, docpage.EINTERNAL, docpage.ErrorCode(err))
	assert.Equal(t, "Internal error.", docpage.ErrorMessage(err))
}
