package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/wonny/bandarscan/internal/contracts"
	"github.com/wonny/bandarscan/internal/ranking"
	"github.com/wonny/bandarscan/pkg/logger"
)

// Ranker runs a ranking. *ranking.Service satisfies it.
type Ranker interface {
	Rank(ctx context.Context, req ranking.RankRequest) (*contracts.RankingResult, error)
}

// RankingHandler handles ranking API endpoints
// ⭐ SSOT: 랭킹 API 핸들러는 이 구조체에서만
type RankingHandler struct {
	ranker Ranker
	logger *logger.Logger
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(ranker Ranker, log *logger.Logger) *RankingHandler {
	return &RankingHandler{
		ranker: ranker,
		logger: log.Module("api"),
	}
}

// rankingResponse is the success body of GET /api/ranking
type rankingResponse struct {
	Success bool                    `json:"success"`
	Data    []contracts.RankingItem `json:"data"`
	Total   int                     `json:"total"`
	Mode    string                  `json:"mode"`
}

// GetRanking ranks a watchlist group or a static index
// GET /api/ranking?mode=watchlist|idx30|lq45|idx80&groupId=&fromDate=&toDate=[&refresh=true]
func (h *RankingHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	refresh, _ := strconv.ParseBool(q.Get("refresh"))

	req := ranking.RankRequest{
		Mode:     q.Get("mode"),
		GroupID:  q.Get("groupId"),
		FromDate: q.Get("fromDate"),
		ToDate:   q.Get("toDate"),
		NoCache:  refresh,
	}

	result, err := h.ranker.Rank(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		log := h.logger.WithError(err).WithField("status", status)
		if status == http.StatusInternalServerError {
			log.Error("Ranking failed")
			respondError(w, status, "Internal server error")
			return
		}
		log.Warn("Ranking rejected")
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, rankingResponse{
		Success: true,
		Data:    result.Items,
		Total:   result.Total,
		Mode:    result.Mode,
	})
}

// statusFor maps ranking errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, ranking.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ranking.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
