package handlers

import (
	"net/http"

	"github.com/wonny/bandarscan/internal/indices"
)

// IndicesHandler lists the static index universes
type IndicesHandler struct {
	registry *indices.Registry
}

// NewIndicesHandler creates a new indices handler
func NewIndicesHandler(registry *indices.Registry) *IndicesHandler {
	return &IndicesHandler{registry: registry}
}

type indexInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// GetIndices returns configured index names and member counts
// GET /api/indices
func (h *IndicesHandler) GetIndices(w http.ResponseWriter, r *http.Request) {
	all := h.registry.All()
	out := make([]indexInfo, 0, len(all))
	for _, idx := range all {
		out = append(out, indexInfo{
			Name:  idx.Name,
			Label: idx.Label,
			Count: len(idx.Symbols),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    out,
		"total":   len(out),
	})
}
