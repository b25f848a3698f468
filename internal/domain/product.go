package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

type Category string

const (
	CategoryMen    Category = "men"
	CategoryWomen  Category = "women"
	CategoryBoy    Category = "boy"
	CategoryGirl   Category = "girl"
	CategorySports Category = "sports"
)

type Gender string

const (
	GenderMan    Gender = "man"
	GenderWoman  Gender = "woman"
	GenderUnisex Gender = "unisex"
)

type Size string

const (
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// TopCategory is a derived marketing tier, recomputed whenever a product's
// rating aggregate changes.
type TopCategory string

const (
	TopCategoryRegular      TopCategory = "Regular"
	TopCategoryBestseller   TopCategory = "Bestseller"
	TopCategoryHighestRated TopCategory = "Highest rated"
	TopCategoryFeatured     TopCategory = "Featured"
)

// Image is a stored blob reference: the object-store key plus the public URL.
type Image struct {
	Key string `gorm:"size:255" json:"key"`
	URL string `gorm:"size:255" json:"url"`
}

type Product struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string        `gorm:"size:180;uniqueIndex" json:"name"`
	Slug          string        `gorm:"size:140;uniqueIndex" json:"slug"`
	Image         Image         `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	Description   string        `gorm:"type:text" json:"description"`
	OriginalPrice float64       `gorm:"type:decimal(12,2)" json:"original_price"`
	Price         float64       `gorm:"type:decimal(12,2)" json:"price"`
	Discount      int           `gorm:"default:0" json:"discount"`
	InStock       int           `gorm:"type:int;default:0" json:"in_stock"`
	Colors        []string      `gorm:"type:jsonb;serializer:json" json:"colors"`
	Sizes         []Size        `gorm:"type:jsonb;serializer:json" json:"sizes"`
	Brand         string        `gorm:"size:100" json:"brand"`
	Category      Category      `gorm:"type:varchar(20);index" json:"category"`
	ProductType   string        `gorm:"size:100" json:"product_type"`
	Gender        Gender        `gorm:"type:varchar(10)" json:"gender"`
	Status        ProductStatus `gorm:"type:varchar(10);default:'active';index" json:"status"`
	AverageRating float64       `gorm:"type:decimal(3,2);default:0" json:"average_rating"`
	TotalReviews  int           `gorm:"default:0" json:"total_reviews"`
	Sales         int           `gorm:"default:0" json:"sales"`
	TopCategory   TopCategory   `gorm:"type:varchar(20);default:'Regular';index" json:"top_category"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ApplyPricing derives the selling price from the original price and the
// requested discount. Discounts outside [5,15] percent are dropped to 0 and
// the product sells at the original price.
func ApplyPricing(originalPrice float64, discount int) (price float64, applied int) {
	if discount < 5 || discount > 15 {
		return originalPrice, 0
	}
	return originalPrice - float64(discount)*(originalPrice/100), discount
}

// ClassifyTopCategory maps a rating aggregate and sales volume onto a tier.
// Rule order matters: the first match wins.
func ClassifyTopCategory(averageRating float64, sales int) TopCategory {
	switch {
	case averageRating >= 4.5 && averageRating <= 4.7:
		return TopCategoryFeatured
	case averageRating >= 4.8 && sales < 50:
		return TopCategoryHighestRated
	case averageRating >= 4.5 && sales >= 50:
		return TopCategoryBestseller
	default:
		return TopCategoryRegular
	}
}
