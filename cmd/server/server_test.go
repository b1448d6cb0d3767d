package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/leagus/internal/config"
	leaguesvc "github.com/codr1/leagus/internal/leagues"
	"github.com/codr1/leagus/internal/testutil"
)

func TestServerRoutes(t *testing.T) {
	cfg := config.Default()
	cfg.App.StaticDir = t.TempDir()
	server := newServer(cfg, testutil.NewTestDB(t), leaguesvc.DefaultPointsRules)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "health", method: http.MethodGet, target: "/health", wantStatus: http.StatusOK, wantBody: "OK"},
		{name: "index", method: http.MethodGet, target: "/", wantStatus: http.StatusOK, wantBody: "Run leagues"},
		{name: "unknown path", method: http.MethodGet, target: "/nowhere", wantStatus: http.StatusNotFound},
		{name: "leagues page", method: http.MethodGet, target: "/leagues", wantStatus: http.StatusOK, wantBody: "Leagues"},
		{name: "leagues api", method: http.MethodGet, target: "/api/v1/leagues", wantStatus: http.StatusOK, wantBody: `"leagues"`},
		{name: "round create dispatch", method: http.MethodPost, target: "/rounds/create/not-an-id", wantStatus: http.StatusBadRequest},
		{name: "metrics", method: http.MethodGet, target: "/metrics", wantStatus: http.StatusOK, wantBody: "leagus_http_requests_total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			server.Handler.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.target, nil))
			if recorder.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, recorder.Code)
			}
			if tt.wantBody != "" && !strings.Contains(recorder.Body.String(), tt.wantBody) {
				t.Fatalf("expected body to contain %q", tt.wantBody)
			}
			if recorder.Header().Get("X-Request-ID") == "" {
				t.Fatalf("expected X-Request-ID header")
			}
		})
	}
}
