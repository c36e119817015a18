package handlers

import (
	"log"
	"net/http"
	"strconv"

	"veritas/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsHandler handles article and incident read endpoints
type NewsHandler struct {
	newsService *services.NewsService
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(db *gorm.DB) *NewsHandler {
	return &NewsHandler{
		newsService: services.NewNewsService(db),
	}
}

// HealthCheck handles GET /health
func (h *NewsHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListNews handles GET /api/news
func (h *NewsHandler) ListNews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if perPage > 100 {
		perPage = 100
	}
	if perPage < 1 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}

	filters := services.SearchFilters{
		Query:        c.Query("q"),
		Location:     c.Query("location"),
		IncidentType: c.Query("type"),
	}

	articles, total, err := h.newsService.SearchArticles(c.Request.Context(), filters, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	pages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		pages++
	}

	c.JSON(http.StatusOK, gin.H{
		"news": articles,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
			"pages":    pages,
		},
	})
}

// GetArticle handles GET /api/news/:id. Authenticated requests record a
// history entry, which feeds the recommendation generator.
func (h *NewsHandler) GetArticle(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID format"})
		return
	}

	article, err := h.newsService.ArticleByID(c.Request.Context(), articleID)
	if err != nil {
		respondError(c, err)
		return
	}

	if userIDStr := c.GetString("user_id"); userIDStr != "" {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			if err := h.newsService.RecordView(c.Request.Context(), userID, articleID); err != nil {
				log.Printf("Failed to record view for user %s: %v", userID, err)
			}
		}
	}

	response := gin.H{"article": article}
	if incident, err := h.newsService.IncidentForArticle(c.Request.Context(), articleID); err == nil {
		response["incident_id"] = incident.ID
	}

	c.JSON(http.StatusOK, response)
}
