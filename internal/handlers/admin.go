package handlers

import (
	"net/http"
	"os"

	"veritas/internal/models"
	"veritas/internal/worker"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler handles the admin interface
type AdminHandler struct {
	db            *gorm.DB
	workerService *worker.WorkerService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, workerService *worker.WorkerService) *AdminHandler {
	return &AdminHandler{db: db, workerService: workerService}
}

// AdminAuth middleware for basic password protection
func (h *AdminHandler) AdminAuth() gin.HandlerFunc {
	return gin.BasicAuth(gin.Accounts{
		"admin": getAdminPassword(),
	})
}

// getAdminPassword returns the admin password from environment or default
func getAdminPassword() string {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123" // Default password for development
	}
	return password
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	var articleCount, incidentCount, sourceCount, userCount, analysisCount int64
	h.db.Model(&models.Article{}).Count(&articleCount)
	h.db.Model(&models.Incident{}).Count(&incidentCount)
	h.db.Model(&models.Source{}).Count(&sourceCount)
	h.db.Model(&models.User{}).Count(&userCount)
	h.db.Model(&models.AnalysisResult{}).Count(&analysisCount)

	var sources []models.Source
	h.db.Find(&sources)
	sourceStats := make([]gin.H, 0, len(sources))
	for _, source := range sources {
		var count int64
		h.db.Model(&models.Article{}).Where("source_id = ?", source.ID).Count(&count)
		sourceStats = append(sourceStats, gin.H{
			"name":          source.Name,
			"category":      source.Category,
			"article_count": count,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":       articleCount,
		"incidents":      incidentCount,
		"sources":        sourceCount,
		"users":          userCount,
		"analyses":       analysisCount,
		"worker_running": h.workerService.IsRunning(),
		"by_source":      sourceStats,
	})
}

// TriggerFetch handles POST /admin/fetch
func (h *AdminHandler) TriggerFetch(c *gin.Context) {
	stats, err := h.workerService.TriggerFetch(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Fetch failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
