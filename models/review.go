package models

import "time"

// Review is append-only; the composite unique index enforces one review
// per user per product even when two requests race past the service check.
type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"index;uniqueIndex:idx_review_product_user" json:"product_id"`
	UserID    string    `gorm:"uniqueIndex:idx_review_product_user" json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
