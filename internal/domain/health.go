package domain

import "context"

const (
	HealthStatusUp       = "up"
	HealthStatusDown     = "down"
	HealthStatusDisabled = "disabled"
)

type HealthReport struct {
	Healthy    bool              `json:"healthy"`
	Components map[string]string `json:"components"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthReport
}
