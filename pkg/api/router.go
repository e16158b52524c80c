package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/api/handlers"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/api/middleware"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/config"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/services"
)

func NewRouter(cfg *config.Config, service *services.ExtractionService) *gin.Engine {
	router := gin.Default()

	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// API routes
	v1 := router.Group("/api/v1")
	{
		extractions := v1.Group("/extractions")
		extractions.Use(middleware.RequireKey(cfg.API.Key))
		{
			extractions.POST("", handlers.StartExtraction(service))
			extractions.GET("/:id", handlers.GetExtraction(service))
			extractions.GET("/:id/result", handlers.GetExtractionResult(service))
			extractions.GET("/:id/report", handlers.GetExtractionReport(service))
			extractions.DELETE("/:id", handlers.CancelExtraction(service))
		}
	}

	return router
}
