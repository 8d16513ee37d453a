package exception_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/robgonnella/sweep/internal/exception"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("detects wrapped input error", func(st *testing.T) {
		err := fmt.Errorf("scan failed: %w", exception.NewInputError("ports", "abc", errors.New("not a number")))

		assert.True(st, exception.IsInputError(err))
		assert.False(st, exception.IsUnexpectedIOError(err))
		assert.Equal(st, `scan failed: invalid ports "abc": not a number`, err.Error())
	})

	t.Run("formats input error without value", func(st *testing.T) {
		err := exception.NewInputError("ports", "", errors.New("empty port set"))

		assert.Equal(st, "invalid ports: empty port set", err.Error())
	})

	t.Run("unwraps unexpected io error", func(st *testing.T) {
		cause := errors.New("too many open files")
		err := exception.NewUnexpectedIOError("127.0.0.1:22", cause)

		assert.True(st, exception.IsUnexpectedIOError(err))
		assert.ErrorIs(st, err, cause)
	})
}
