package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/wonny/bandarscan/internal/api/handlers"
	"github.com/wonny/bandarscan/internal/contracts"
	"github.com/wonny/bandarscan/internal/indices"
	"github.com/wonny/bandarscan/internal/ranking"
	"github.com/wonny/bandarscan/pkg/logger"
)

type panicRanker struct{}

func (panicRanker) Rank(ctx context.Context, req ranking.RankRequest) (*contracts.RankingResult, error) {
	panic("unexpected")
}

func newTestRouter(gatherer prometheus.Gatherer) http.Handler {
	return NewRouter(
		handlers.NewRankingHandler(panicRanker{}, logger.Nop()),
		handlers.NewIndicesHandler(indices.Default()),
		gatherer,
		logger.Nop(),
	)
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	ranking.NewMetrics(reg)

	rec := httptest.NewRecorder()
	newTestRouter(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RecoversPanics(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ranking?mode=lq45", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ranking", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
