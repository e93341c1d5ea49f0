package postgres

import (
	"errors"
	"fmt"
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"Should pass nil through", nil, nil},
		{"Should map no rows to not found", pgx.ErrNoRows, domain.ErrNotFound},
		{"Should map wrapped no rows to not found", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"Should map unique violation to duplicate", &pgconn.PgError{Code: pgUniqueViolation}, domain.ErrDuplicate},
		{"Should map malformed uuid to not found", &pgconn.PgError{Code: pgInvalidTextRep}, domain.ErrNotFound},
		{"Should map dangling reference to not found", &pgconn.PgError{Code: pgForeignKeyViolation}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("Should keep unknown errors", func(t *testing.T) {
		boom := errors.New("connection reset")
		assert.Equal(t, boom, translate(boom))
	})
}
