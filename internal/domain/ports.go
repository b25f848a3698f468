package domain

import (
	"context"

	"github.com/google/uuid"
)

type ProductFilter struct {
	Status      ProductStatus
	Stock       StockFilter
	Discounted  bool
	TopCategory TopCategory
	Page        int
	PageSize    int
}

type StockFilter string

const (
	StockAny StockFilter = ""
	StockIn  StockFilter = "in_stock"
	StockOut StockFilter = "out_of_stock"
)

type ProductRepo interface {
	// Create persists a new product; a duplicate name yields ErrConflict.
	Create(ctx context.Context, p *Product) error
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	UpdateImage(ctx context.Context, id uuid.UUID, img Image) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status ProductStatus) error
	UpdateStock(ctx context.Context, id uuid.UUID, inStock int) error
	UpdatePricing(ctx context.Context, id uuid.UUID, originalPrice float64, discount int, price float64) error
	// AddSales atomically increments sales and decrements in_stock by qty in
	// one statement. No stock floor is enforced here.
	AddSales(ctx context.Context, id uuid.UUID, qty int) error
	// UpdateRatingAndTier writes the fresh review aggregate and recomputes
	// top_category from it and the current sales count.
	UpdateRatingAndTier(ctx context.Context, id uuid.UUID, totalReviews int, averageRating float64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderFilter struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Status    OrderStatus
	Page      int
	PageSize  int
}

// LineFilter selects order lines across all orders. Zero-valued fields match
// everything.
type LineFilter struct {
	OrderID   uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Page      int
	PageSize  int
}

type OrderRepo interface {
	// Create persists the order and its lines in one transaction, assigning
	// each line a fresh product_uid.
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, f OrderFilter) ([]Order, int64, error)
	ListLines(ctx context.Context, f LineFilter) ([]OrderLine, int64, error)
	FindLineByUID(ctx context.Context, productUID uuid.UUID) (*OrderLine, error)
	HasLinesForProduct(ctx context.Context, productID uuid.UUID) (bool, error)
	// UpdateLineImage pushes a new catalog image into every line snapshot of
	// the given product, across all orders.
	UpdateLineImage(ctx context.Context, productID uuid.UUID, img Image) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReviewFilter struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Page      int
	PageSize  int
}

type ReviewRepo interface {
	// Create persists a review; a second review for the same product_uid
	// yields ErrConflict.
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByProductUID(ctx context.Context, productUID uuid.UUID) (*Review, error)
	List(ctx context.Context, f ReviewFilter) ([]Review, int64, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateUserName(ctx context.Context, userID uuid.UUID, name string) error
	UpdateUserImage(ctx context.Context, userID uuid.UUID, img Image) error
	// RatingSummary recomputes (count, mean rating) over all reviews of one
	// product in a single aggregate query.
	RatingSummary(ctx context.Context, productID uuid.UUID) (total int, average float64, err error)
}

type UserRepo interface {
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	UpdateImage(ctx context.Context, id uuid.UUID, img Image) error
}

// PaymentIntent is an authorized-but-uncaptured charge at the processor.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

type PaymentGateway interface {
	// CreateIntent authorizes a charge for the given amount in minor units
	// (cents). Failures wrap ErrGateway.
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (*PaymentIntent, error)
}

// StoredObject is a blob handle in the object store.
type StoredObject struct {
	Key string
	URL string
}

type FileStorage interface {
	Put(data []byte, contentType string) (*StoredObject, error)
	Delete(key string) error
}
