package usecase

import (
	"context"
	"time"
)

// DependencyCheck pings one backing service.
type DependencyCheck func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	checks  map[string]DependencyCheck
	timeout time.Duration
}

func NewHealthUsecase(checks map[string]DependencyCheck) HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

// Check reports "ok" or "unavailable" per dependency and whether all of them are up.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{}
	healthy := true
	for name, check := range u.checks {
		checkCtx, cancel := context.WithTimeout(ctx, u.timeout)
		err := check(checkCtx)
		cancel()
		if err != nil {
			status[name] = "unavailable"
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	return status, healthy
}
