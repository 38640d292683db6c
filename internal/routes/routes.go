package routes

import (
	"net/http"

	"lifemed_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every HTTP route onto the engine.
func RegisterRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	authMW gin.HandlerFunc,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("")
	{
		authHandler.RegisterRoutes(api)
		userHandler.RegisterRoutes(api, authMW)
	}
}
