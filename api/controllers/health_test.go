package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/izishop-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/izishop-backend/pkg/errors"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "test"}}
}

func TestHealthLive(t *testing.T) {
	resp := httptest.NewRecorder()
	HealthLive(testConfig()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "test", resp.Header().Get("X-IZiShop-Env"))
}

func TestHealthReady(t *testing.T) {
	resp := httptest.NewRecorder()
	HealthReady(testConfig(), nil,
		Dependency{Name: "db", Pinger: stubPinger{}},
		Dependency{Name: "redis"},
	).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ready", body.Data.Status)
	assert.Equal(t, map[string]string{"db": "ok"}, body.Data.Checks)
}

func TestHealthReadyFailure(t *testing.T) {
	resp := httptest.NewRecorder()
	HealthReady(testConfig(), nil,
		Dependency{Name: "db", Pinger: stubPinger{}},
		Dependency{Name: "redis", Pinger: stubPinger{err: errors.New("refused")}},
	).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)

	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(pkgerrors.CodeDependency), body.Error.Code)
	assert.Equal(t, "unavailable", body.Error.Details["redis"])
}
