package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jdavidberger/depthai-ros/internal/logging"
	"github.com/jdavidberger/depthai-ros/internal/version"
)

// HealthResponse reports liveness.
type HealthResponse struct {
	Body struct {
		Status string `json:"status" example:"ok"`
	}
}

// VersionResponse reports build metadata.
type VersionResponse struct {
	Body version.Info
}

// LogsResponse returns recent log entries from the ring buffer.
type LogsResponse struct {
	Body struct {
		Entries []logging.LogEntry `json:"entries"`
	}
}

func (s *Server) registerSystemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health Check",
		Tags:        []string{"system"},
	}, func(_ context.Context, _ *struct{}) (*HealthResponse, error) {
		resp := &HealthResponse{}
		resp.Body.Status = "ok"
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Get Version",
		Tags:        []string{"system"},
	}, func(_ context.Context, _ *struct{}) (*VersionResponse, error) {
		return &VersionResponse{Body: version.Get()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-logs",
		Method:      http.MethodGet,
		Path:        "/api/logs",
		Summary:     "Get Recent Logs",
		Tags:        []string{"system"},
	}, func(_ context.Context, _ *struct{}) (*LogsResponse, error) {
		resp := &LogsResponse{}
		if buf := logging.GetBuffer(); buf != nil {
			resp.Body.Entries = buf.ReadAll()
		}
		return resp, nil
	})
}
