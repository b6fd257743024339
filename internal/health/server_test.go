package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error { return s.err }

func newTestServer(db DatabasePinger) *Server {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewServer(Config{
		ServiceName: "oddscout",
		Version:     "test",
		Logger:      log,
		DB:          db,
	})
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(nil)
	s.RecordScan(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "oddscout", body.Service)
	assert.Equal(t, "2026-08-29T12:00:00Z", body.LastScan)
}

func TestHandleReadyNotReadyAtStartup(t *testing.T) {
	s := newTestServer(&stubPinger{})

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleReadyAfterStartup(t *testing.T) {
	s := newTestServer(&stubPinger{})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Checks["service"])
	assert.Equal(t, "ok", body.Checks["database"])
}

func TestHandleReadyDatabaseDown(t *testing.T) {
	s := newTestServer(&stubPinger{err: errors.New("connection refused")})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Checks["database"], "connection refused")
}

func TestHandleLive(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.handleLive(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
