package usecase

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

type healthUsecase struct {
	database HealthCheck
	optional map[string]HealthCheck
}

// NewHealthUsecase reports the database as required. Optional checks that are
// nil are reported as disabled and never fail the report.
func NewHealthUsecase(database HealthCheck, optional map[string]HealthCheck) domain.HealthUsecase {
	return &healthUsecase{database: database, optional: optional}
}

func (u *healthUsecase) Check(ctx context.Context) domain.HealthReport {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	report := domain.HealthReport{Healthy: true, Components: map[string]string{}}

	report.Components["database"] = domain.HealthStatusUp
	if err := u.database(ctx); err != nil {
		logger.Log.Error("database health check failed", "error", err)
		report.Components["database"] = domain.HealthStatusDown
		report.Healthy = false
	}

	for name, check := range u.optional {
		switch {
		case check == nil:
			report.Components[name] = domain.HealthStatusDisabled
		case check(ctx) != nil:
			logger.Log.Warn("optional dependency unavailable", "component", name)
			report.Components[name] = domain.HealthStatusDown
		default:
			report.Components[name] = domain.HealthStatusUp
		}
	}
	return report
}
