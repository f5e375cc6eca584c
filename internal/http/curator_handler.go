package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"curator-llm/internal/repository"
	"curator-llm/internal/service"
)

// CuratorHandler mantiene dependencias para los endpoints del curador.
type CuratorHandler struct {
	logger       *zap.Logger
	contents     repository.ContentRepository
	curator      *service.CuratorService
	limiter      service.AnalyzeRateLimiter
	contentLimit int
}

// NewCuratorHandler crea una instancia de CuratorHandler con dependencias necesarias.
func NewCuratorHandler(
	logger *zap.Logger,
	contents repository.ContentRepository,
	curator *service.CuratorService,
	limiter service.AnalyzeRateLimiter,
	contentLimit int,
) *CuratorHandler {
	return &CuratorHandler{
		logger:       logger,
		contents:     contents,
		curator:      curator,
		limiter:      limiter,
		contentLimit: contentLimit,
	}
}

// Analyze maneja POST /curator/analyze: corre el pipeline completo.
func (h *CuratorHandler) Analyze(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}
	userID := claims.UserID

	if h.limiter != nil && !h.limiter.Allow(userID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many analysis requests"})
		return
	}

	items, err := h.contents.ListByUser(c.Request.Context(), userID, h.contentLimit)
	if err != nil {
		h.logger.Error("list content failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load content history"})
		return
	}

	bundle, err := h.curator.RunFullAnalysis(c.Request.Context(), userID, items)
	if err != nil {
		h.logger.Error("analysis failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bundle": bundle})
}

// GetProfile maneja GET /curator/profile y devuelve el bundle cacheado.
func (h *CuratorHandler) GetProfile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	bundle, found := h.curator.GetCached(c.Request.Context(), claims.UserID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analysis yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bundle": bundle})
}

// InvalidateCache maneja DELETE /curator/cache.
// Es la unica via para forzar que el proximo analisis parta de cero.
func (h *CuratorHandler) InvalidateCache(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	if err := h.curator.Invalidate(c.Request.Context(), claims.UserID); err != nil {
		h.logger.Error("invalidate failed", zap.Error(err), zap.String("user_id", claims.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not invalidate cache"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}
