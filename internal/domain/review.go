package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is written by the buyer of one exact order line, keyed by that
// line's product_uid. The reviewer's name and image are denormalized copies
// kept in sync by the user flows; the product image here is reviewer-supplied
// and independent of the catalog image.
type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	UserName     string    `gorm:"size:140" json:"user_name"`
	UserImage    Image     `gorm:"embedded;embeddedPrefix:user_image_" json:"user_image"`
	ProductID    uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	OrderID      uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ProductUID   uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"product_uid"`
	ProductImage Image     `gorm:"embedded;embeddedPrefix:product_image_" json:"product_image"`
	Review       string    `gorm:"type:text" json:"review"`
	Rating       float64   `gorm:"type:decimal(2,1)" json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
