package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlabs/storefront-api/models"
	"gorm.io/gorm"
)

type UpdateProductRequest struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Brand          *string   `json:"brand"`
	Category       *string   `json:"category"`
	Price          *float64  `json:"price"`
	CompareAtPrice *float64  `json:"compare_at_price"`
	Stock          *int      `json:"stock"`
	Images         *[]string `json:"images"`
}

// canModify reports whether the caller may edit the product: its creator
// or an admin.
func canModify(c *gin.Context, product models.Product) bool {
	return c.GetString("role") == models.RoleAdmin || product.CreatedBy == c.GetString("user_id")
}

// UpdateProduct applies a partial update to an existing product.
// Owner or admin only.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		if !canModify(c, product) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not allowed to modify this product"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Brand != nil {
			product.Brand = *req.Brand
		}
		if req.Category != nil {
			if !models.ValidCategory(*req.Category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			product.Category = *req.Category
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
				return
			}
			product.Price = *req.Price
		}
		if req.CompareAtPrice != nil {
			product.CompareAtPrice = *req.CompareAtPrice
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock must not be negative"})
				return
			}
			product.Stock = *req.Stock
		}
		if req.Images != nil {
			product.Images = *req.Images
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
