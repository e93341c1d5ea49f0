package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		kind Kind
		code int
	}{
		{"bad request", BadRequest("x"), KindInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("x"), KindUnauthenticated, http.StatusUnauthorized},
		{"forbidden", Forbidden("x"), KindForbidden, http.StatusForbidden},
		{"not found", NotFound("x"), KindNotFound, http.StatusNotFound},
		{"conflict", Conflict("x"), KindConflict, http.StatusConflict},
		{"expired", Expired("x"), KindExpired, http.StatusBadRequest},
		{"too many requests", TooManyRequests("x"), KindRateLimited, http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.err.Kind)
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, "x", tc.err.Error())
		})
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, "Internal Server Error", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	t.Run("Should unwrap wrapped app errors", func(t *testing.T) {
		err := fmt.Errorf("apply: %w", Conflict("already applied"))
		assert.Equal(t, KindConflict, KindOf(err))
		assert.True(t, Is(err, KindConflict))
	})

	t.Run("Should treat plain errors as internal", func(t *testing.T) {
		assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
		assert.False(t, Is(nil, KindInternal))
	})
}
