package handler

import (
	"context"
	"net/http"

	"github.com/osse101/QuestPlanner_Go/internal/catalog"
)

// CacheAdmin exposes the catalog cache controls
type CacheAdmin interface {
	Stats() catalog.Stats
	Refresh(ctx context.Context, source string) error
	Clear()
}

// AdminCacheHandler handles admin cache operations
type AdminCacheHandler struct {
	cache CacheAdmin
}

// NewAdminCacheHandler creates a new admin cache handler
func NewAdminCacheHandler(cache CacheAdmin) *AdminCacheHandler {
	return &AdminCacheHandler{cache: cache}
}

// HandleGetCacheStats returns catalog and player cache statistics
// @Summary Get cache stats
// @Description Returns cache hit/miss statistics for monitoring (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} catalog.Stats
// @Security ApiKeyAuth
// @Router /api/v1/admin/cache/stats [get]
func (h *AdminCacheHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cache.Stats())
}

// HandleRefreshCatalog reloads the quest catalog from Hypixel
// @Summary Refresh quest catalog
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 502 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/cache/refresh [post]
func (h *AdminCacheHandler) HandleRefreshCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Refresh(r.Context(), catalog.SourceAdmin); err != nil {
		respondServiceError(w, r, ErrMsgRefreshFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCatalogRefreshedSuccess})
}

// HandleClearCache drops every cached catalog and player entry
// @Summary Clear caches
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/cache [delete]
func (h *AdminCacheHandler) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear()
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCacheClearedSuccess})
}
