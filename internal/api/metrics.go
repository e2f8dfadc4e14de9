package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/kbcontrol/internal/metrics"
)

// StatsResponse wraps the running totals.
type StatsResponse struct {
	Body metrics.Stats
}

// registerMetricsRoutes registers the JSON stats endpoint. Prometheus
// scrapes /metrics instead.
func (s *Server) registerMetricsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Statistics",
		Description: "Frames written, write failures and commands since start",
		Tags:        []string{"metrics"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*StatsResponse, error) {
		return &StatsResponse{Body: metrics.Snapshot()}, nil
	})
}
