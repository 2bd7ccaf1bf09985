package handlers

import (
	"net/http"

	"tutorhub/models"
	"tutorhub/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the read-only lookups backing the wizard's choices.
type CatalogHandler struct {
	Service catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{Service: svc}
}

// ListSubjectsHandler handles GET /api/catalog/subjects.
func (h *CatalogHandler) ListSubjectsHandler(c *gin.Context) {
	subjects, err := h.Service.ListSubjects(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list subjects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// ListLevelsHandler handles GET /api/catalog/levels.
func (h *CatalogHandler) ListLevelsHandler(c *gin.Context) {
	levels, err := h.Service.ListLevels(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list levels", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, levels)
}

// ListGradesHandler handles GET /api/catalog/grades. Grades are a fixed
// national list and never hit the collaborator.
func (h *CatalogHandler) ListGradesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.Grades)
}
