package handlers

import (
	"net/http"
	"strconv"

	"veritas/internal/realtime"
	"veritas/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalysisHandler handles incident analysis endpoints
type AnalysisHandler struct {
	newsService     *services.NewsService
	analysisService *services.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(db *gorm.DB, hub *realtime.Hub) *AnalysisHandler {
	return &AnalysisHandler{
		newsService:     services.NewNewsService(db),
		analysisService: services.NewAnalysisService(db, hub),
	}
}

// GetIncident handles GET /api/incidents/:id
func (h *AnalysisHandler) GetIncident(c *gin.Context) {
	incidentID, ok := parseIncidentID(c)
	if !ok {
		return
	}

	incident, err := h.newsService.IncidentByID(c.Request.Context(), incidentID)
	if err != nil {
		respondError(c, err)
		return
	}

	articles, err := h.newsService.IncidentArticles(c.Request.Context(), incidentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incident":   incident,
		"articles":   articles,
		"news_count": len(articles),
	})
}

// GetAnalysis handles GET /api/incidents/:id/analysis. The refresh query
// parameter forces invalidation and recomputation.
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	incidentID, ok := parseIncidentID(c)
	if !ok {
		return
	}

	forceRefresh := c.Query("refresh") == "true"

	analysis, err := h.analysisService.GetOrCreateAnalysis(c.Request.Context(), incidentID, forceRefresh)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// InvalidateAnalysis handles DELETE /api/incidents/:id/analysis
func (h *AnalysisHandler) InvalidateAnalysis(c *gin.Context) {
	incidentID, ok := parseIncidentID(c)
	if !ok {
		return
	}

	if err := h.analysisService.Cache().Invalidate(c.Request.Context(), incidentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invalidated": incidentID})
}

// GetSimilar handles GET /api/incidents/:id/similar
func (h *AnalysisHandler) GetSimilar(c *gin.Context) {
	incidentID, ok := parseIncidentID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit > 20 {
		limit = 20
	}

	similar, err := h.analysisService.SimilarIncidents(c.Request.Context(), incidentID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"similar_incidents": similar})
}

// GetRecommendations handles GET /api/recommendations (authenticated)
func (h *AnalysisHandler) GetRecommendations(c *gin.Context) {
	userIDStr := c.GetString("user_id")
	if userIDStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User authentication required"})
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit > 50 {
		limit = 50
	}

	recommendations, err := h.analysisService.Recommendations(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

func parseIncidentID(c *gin.Context) (uuid.UUID, bool) {
	incidentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident ID format"})
		return uuid.Nil, false
	}
	return incidentID, true
}
