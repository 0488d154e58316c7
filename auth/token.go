package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/storefrontlabs/storefront-api/models"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

// POST /api/auth/guest
//
// Mints a customer session without an account: creates the user row and
// returns a bearer token carrying its id and role.
func CreateGuestSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := "guest_" + generateRandomString(16)

		user := models.User{
			ID:   userID,
			Name: "Guest",
			Role: models.RoleCustomer,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		token, err := IssueToken(user.ID, user.Name, user.Role, sessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user_id":    user.ID,
			"token":      token,
			"expires_at": time.Now().Add(sessionTTL),
		})
	}
}

// POST /api/auth/admin (X-API-KEY protected)
//
// Mints an admin session for back-office access.
func CreateAdminSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name  string `json:"name" binding:"required"`
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		userID := "admin_" + generateRandomString(16)
		user := models.User{
			ID:    userID,
			Name:  req.Name,
			Email: req.Email,
			Role:  models.RoleAdmin,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		token, err := IssueToken(user.ID, user.Name, user.Role, sessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user_id":    user.ID,
			"token":      token,
			"expires_at": time.Now().Add(sessionTTL),
		})
	}
}

// IssueToken signs a bearer token with the identity claims the middleware
// reads back out.
func IssueToken(userID, name, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"name":    name,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_session"
	}
	return hex.EncodeToString(bytes)
}
