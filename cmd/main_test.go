package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/notify"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Auth.Secret = "testsecret"
	cfg.Simulator.Seed = 3
	cfg.Simulator.MinLatency = 0
	cfg.Simulator.MaxLatency = 0
	return cfg
}

func newTestRouter(t *testing.T, cfg *config.Config) (http.Handler, *auth.Service) {
	t.Helper()
	source, cleanup, err := newSource(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	tokens, err := auth.NewService(cfg.Auth.Secret, cfg.Auth.Expiry)
	require.NoError(t, err)
	provider := maintenance.NewProvider(source, maintenance.WithLatency(0, 0))
	require.NoError(t, provider.LoadAll(context.Background()))
	return newRouter(cfg, provider, tokens), tokens
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "maintenance_operations_total")
}

func TestRouter_AuthenticatedRoutes(t *testing.T) {
	router, tokens := newTestRouter(t, testConfig())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/maintenance/schedules", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := tokens.GenerateToken("u-1", "mia", models.RoleViewer)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/maintenance/schedules", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var schedules []models.MaintenanceSchedule
	require.NoError(t, json.NewDecoder(w.Body).Decode(&schedules))
	assert.Len(t, schedules, maintenance.DefaultCounts.Schedules)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"mia"`)
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Requests = 2
	cfg.RateLimit.Window = time.Hour
	router, _ := newTestRouter(t, cfg)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.1.1.1:4000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewSource_MongoUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.Source = config.SourceMongo
	cfg.Mongo.URI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _, err := newSource(ctx, cfg)
	assert.Error(t, err)
}

func TestNewNotifier(t *testing.T) {
	t.Run("log only without broker", func(t *testing.T) {
		n, cleanup := newNotifier(testConfig())
		defer cleanup()
		_, ok := n.(*notify.LogNotifier)
		assert.True(t, ok)
	})

	t.Run("falls back when broker is unreachable", func(t *testing.T) {
		if testing.Short() {
			t.Skip("dials a closed port")
		}
		cfg := testConfig()
		cfg.MQTT.Broker = "tcp://127.0.0.1:1"
		n, cleanup := newNotifier(cfg)
		defer cleanup()
		_, ok := n.(*notify.LogNotifier)
		assert.True(t, ok)
	})
}
