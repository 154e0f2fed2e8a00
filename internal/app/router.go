package app

import (
	"net/http"

	_ "location-base/docs"
	"location-base/internal/handler"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter registers the HTTP API on a new gin engine.
func NewRouter(a *App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger())

	locationHandler := handler.NewLocationHandler(a.Capture)
	preferenceHandler := handler.NewPreferenceHandler(a.Preferences)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.POST("/locations", locationHandler.Capture)
	r.GET("/locations", locationHandler.List)

	r.GET("/preferences/dark-mode", preferenceHandler.Get)
	r.PUT("/preferences/dark-mode", preferenceHandler.Set)
	r.POST("/preferences/dark-mode/toggle", preferenceHandler.Toggle)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
