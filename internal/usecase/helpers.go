package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"
)

// repoErr converts repository errors into user-facing AppErrors.
func repoErr(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	default:
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.Internal(err)
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// patchString replaces *dst when v is non-empty.
func patchString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func patchOptional(dst **string, v string) {
	if p := optional(v); p != nil {
		*dst = p
	}
}

func clock(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// denied records a failed authorization check and passes err through.
func denied(ctx context.Context, sl *security.SecurityLogger, actor domain.Actor, resource string, err error) error {
	if err != nil {
		sl.LogAccessDenied(ctx, actor.ID, resource, err.Error())
	}
	return err
}
