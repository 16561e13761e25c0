package pricewatch_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/pricewatch"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code for application errors", func(t *testing.T) {
		t.Parallel()

		err := pricewatch.Errorf(pricewatch.EINVALID, "bad input")
		assert.Equal(t, pricewatch.EINVALID, pricewatch.ErrorCode(err))
	})

	t.Run("returns code for wrapped application errors", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("outer: %w", pricewatch.Errorf(pricewatch.ENOTFOUND, "missing"))
		assert.Equal(t, pricewatch.ENOTFOUND, pricewatch.ErrorCode(err))
	})

	t.Run("returns EINTERNAL for non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, pricewatch.EINTERNAL, pricewatch.ErrorCode(errors.New("boom")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", pricewatch.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns message for application errors", func(t *testing.T) {
		t.Parallel()

		err := pricewatch.Errorf(pricewatch.EINVALID, "bad %s", "selector")
		assert.Equal(t, "bad selector", pricewatch.ErrorMessage(err))
	})

	t.Run("masks non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Internal error.", pricewatch.ErrorMessage(errors.New("boom")))
	})
}
