package routes

import (
	"net/http"
	"time"

	"tutorhub/handlers"
	"tutorhub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWizardRoutes registers the registration wizard endpoints. Session
// creation is open; every call addressing an existing session requires the
// token issued at start.
func RegisterWizardRoutes(r *gin.Engine, wh *handlers.WizardHandler) {
	api := r.Group("/api/register")
	{
		api.POST("/session", wh.StartSessionHandler)

		session := api.Group("/session/:id")
		session.Use(middleware.WizardSessionAuthMiddleware())
		session.GET("", wh.GetSessionHandler)
		session.PATCH("/fields", wh.UpdateFieldsHandler)
		session.POST("/next", wh.NextHandler)
		session.POST("/back", wh.BackHandler)
		session.POST("/documents/:tag", wh.StageDocumentHandler)
		session.POST("/submit", wh.SubmitHandler)
		session.DELETE("", wh.CancelHandler)
	}
}

// RegisterCatalogRoutes registers the read-only lookup endpoints.
func RegisterCatalogRoutes(r *gin.Engine, ch *handlers.CatalogHandler) {
	api := r.Group("/api/catalog")
	{
		api.GET("/subjects", ch.ListSubjectsHandler)
		api.GET("/levels", ch.ListLevelsHandler)
		api.GET("/grades", ch.ListGradesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, wh *handlers.WizardHandler, ch *handlers.CatalogHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterWizardRoutes(r, wh)
	RegisterCatalogRoutes(r, ch)
	RegisterHealthRoute(r)
}
