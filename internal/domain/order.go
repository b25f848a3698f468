package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusCompleted:
		return true
	}
	return false
}

type ShippingAddress struct {
	Country           string `gorm:"size:80" json:"country"`
	City              string `gorm:"size:80" json:"city"`
	HouseNumberOrName string `gorm:"size:140" json:"house_number_or_name"`
	Phone             string `gorm:"size:50" json:"phone"`
	PostCode          string `gorm:"size:20" json:"post_code"`
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	Lines           []OrderLine     `gorm:"foreignKey:OrderID" json:"products"`
	Status          OrderStatus     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	TotalCost       float64         `gorm:"type:decimal(12,2)" json:"total_cost"`
	PaymentIntent   string          `gorm:"size:140" json:"payment_intent"`
	ClientSecret    string          `gorm:"size:140" json:"client_secret"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Deletable reports whether an order may be removed. Orders still moving
// through fulfilment (pending, processing, shipped) are kept.
func (o *Order) Deletable() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped:
		return false
	}
	return true
}

// OrderLine is a point-in-time snapshot of one purchased product. Catalog
// edits after purchase never change the stored price or total; only the
// image is kept in sync with the source product.
type OrderLine struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ProductUID  uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"product_uid"`
	ProductID   uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Name        string    `gorm:"size:180" json:"name"`
	Slug        string    `gorm:"size:140" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Image       Image     `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	Price       float64   `gorm:"type:decimal(12,2)" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Color       string    `gorm:"size:60" json:"color"`
	Size        Size      `gorm:"type:varchar(4)" json:"size"`
	Brand       string    `gorm:"size:100" json:"brand"`
	Category    Category  `gorm:"type:varchar(20)" json:"category"`
	ProductType string    `gorm:"size:100" json:"product_type"`
	Gender      Gender    `gorm:"type:varchar(10)" json:"gender"`
	OrderedAt   time.Time `json:"ordered_at"`
}
