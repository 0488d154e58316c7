package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/storefrontlabs/storefront-api/controllers/product"
	"github.com/storefrontlabs/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	products := api.Group("/products")
	{
		// Public catalog
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))

		products.POST("", middleware.ValidateToken, middleware.RequireAdmin, productcontroller.CreateProduct(db))

		// Owner or admin (checked in the handlers)
		products.PUT("/:id", middleware.ValidateToken, productcontroller.UpdateProduct(db))
		products.DELETE("/:id", middleware.ValidateToken, productcontroller.DeleteProduct(db))

		// Reviews
		products.POST("/:id/reviews", middleware.ValidateToken, productcontroller.AddReviewHandler(db))
	}

	// Lives outside /products so the static segment does not collide with
	// the :id route.
	api.GET("/admin/products/export", middleware.ValidateToken, middleware.RequireAdmin, productcontroller.ExportProductsToExcel(db))
}
