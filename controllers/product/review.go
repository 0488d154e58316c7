package productcontroller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlabs/storefront-api/models"
	"gorm.io/gorm"
)

const minCommentLength = 10

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrCommentTooShort = errors.New("comment must be at least 10 characters")
	ErrDuplicateReview = errors.New("user has already reviewed this product")
	ErrProductNotFound = errors.New("product not found")
)

type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// AddReview appends a review and recomputes the product's mean rating and
// review count. The duplicate check and the recompute run in one
// transaction; the unique index on (product_id, user_id) backstops
// concurrent appends by the same user.
func AddReview(db *gorm.DB, productID uint, userID, userName string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if len(comment) < minCommentLength {
		return nil, ErrCommentTooShort
	}

	review := models.Review{
		ProductID: productID,
		UserID:    userID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("product_id = ? AND user_id = ?", productID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateReview
		}

		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		// The aggregate is recomputed from the reviews table rather than
		// adjusted in memory, so a concurrent append cannot leave a stale
		// mean behind.
		var agg struct {
			Mean float64
			Num  int64
		}
		if err := tx.Model(&models.Review{}).
			Select("AVG(rating) AS mean, COUNT(*) AS num").
			Where("product_id = ?", productID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&product).Updates(map[string]interface{}{
			"ratings":        agg.Mean,
			"num_of_reviews": agg.Num,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// AddReviewHandler handles POST /api/products/:id/reviews.
func AddReviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var req AddReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		review, err := AddReview(db, uint(productID), c.GetString("user_id"), c.GetString("user_name"), req.Rating, req.Comment)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, review)
		case errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInvalidRating),
			errors.Is(err, ErrCommentTooShort),
			errors.Is(err, ErrDuplicateReview):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
		}
	}
}
