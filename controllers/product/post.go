package productcontroller

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlabs/storefront-api/models"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Brand          string   `json:"brand"`
	Category       string   `json:"category" binding:"required"`
	Price          float64  `json:"price" binding:"required,gt=0"`
	CompareAtPrice float64  `json:"compare_at_price"`
	Stock          int      `json:"stock" binding:"min=0"`
	SKU            string   `json:"sku"`
	Images         []string `json:"images"`
}

// GenerateSKU derives a stock-keeping unit from the category: first three
// letters uppercased, then the creation timestamp.
func GenerateSKU(category string) string {
	prefix := strings.ToUpper(category)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// CreateProduct adds a product to the catalog. Admin only.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if !models.ValidCategory(req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		if req.SKU == "" {
			req.SKU = GenerateSKU(req.Category)
		}

		product := models.Product{
			Name:           req.Name,
			Description:    req.Description,
			Brand:          req.Brand,
			Category:       req.Category,
			Price:          req.Price,
			CompareAtPrice: req.CompareAtPrice,
			Stock:          req.Stock,
			SKU:            req.SKU,
			Images:         req.Images,
			CreatedBy:      c.GetString("user_id"),
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
