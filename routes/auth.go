package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storefrontlabs/storefront-api/auth"
	"github.com/storefrontlabs/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	sessions := api.Group("/auth")
	{
		sessions.POST("/guest", auth.CreateGuestSession(db))
		sessions.POST("/admin", middleware.ValidateAPIKey, auth.CreateAdminSession(db))
	}
}
