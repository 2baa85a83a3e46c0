package service

import (
	"context"
	"log/slog"
	"time"

	"anoa.com/freshwash/pkg/database"
	"gorm.io/gorm"
)

const (
	StatusUp   = "up"
	StatusDown = "down"
)

type Report struct {
	Healthy bool              `json:"-"`
	Status  string            `json:"status"`
	Stores  map[string]string `json:"stores"`
}

type HealthService interface {
	Check(ctx context.Context) Report
}

type healthService struct {
	stores  map[string]*gorm.DB
	timeout time.Duration
}

// NewHealthService pings each named store with the given per-store timeout.
func NewHealthService(stores map[string]*gorm.DB, timeout time.Duration) HealthService {
	return &healthService{stores: stores, timeout: timeout}
}

func (s *healthService) Check(ctx context.Context) Report {
	report := Report{Healthy: true, Status: "ok", Stores: make(map[string]string, len(s.stores))}

	for name, db := range s.stores {
		pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := database.Ping(pingCtx, db)
		cancel()

		if err != nil {
			slog.WarnContext(ctx, "store health check failed", "store", name, "error", err)
			report.Stores[name] = StatusDown
			report.Healthy = false
			report.Status = "degraded"
			continue
		}
		report.Stores[name] = StatusUp
	}
	return report
}
