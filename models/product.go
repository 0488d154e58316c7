package models

import (
	"time"
)

// Product categories form a closed set validated at the API boundary.
const (
	CategoryElectronics = "electronics"
	CategoryClothing    = "clothing"
	CategoryBooks       = "books"
	CategoryHome        = "home"
	CategorySports      = "sports"
	CategoryBeauty      = "beauty"
	CategoryToys        = "toys"
	CategoryOther       = "other"
)

var Categories = []string{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryHome,
	CategorySports,
	CategoryBeauty,
	CategoryToys,
	CategoryOther,
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Product rows are hard-deleted together with their reviews so a removed
// SKU can be reused.
type Product struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Description    string    `json:"description"`
	Brand          string    `gorm:"index" json:"brand"`
	Category       string    `gorm:"index;not null" json:"category"`
	Price          float64   `gorm:"not null" json:"price"`
	CompareAtPrice float64   `json:"compare_at_price,omitempty"`
	Stock          int       `json:"stock"`
	SKU            string    `gorm:"uniqueIndex" json:"sku"`
	Images         []string  `gorm:"serializer:json" json:"images"`
	Ratings        float64   `json:"ratings"` // mean of all review ratings
	NumOfReviews   int       `json:"num_of_reviews"`
	Reviews        []Review  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	CreatedBy      string    `gorm:"index" json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
