package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

// ReviewUC owns reviews and keeps the per-product rating aggregate current.
// Every create, update and delete recomputes (total_reviews, average_rating)
// from scratch over the product's reviews and pushes the result, including
// the derived tier, back into the catalog.
type ReviewUC struct {
	Reviews  domain.ReviewRepo
	Products domain.ProductRepo
	Orders   domain.OrderRepo
	Users    domain.UserRepo
	Storage  domain.FileStorage
}

type NewReview struct {
	UserID     uuid.UUID
	OrderID    uuid.UUID
	ProductID  uuid.UUID
	ProductUID uuid.UUID
	Review     string
	Rating     float64
	ImageData  []byte
	ImageType  string
}

func validateRating(rating float64) error {
	// Upper bound only, matching the persisted schema.
	if rating > 5 {
		return fmt.Errorf("%w: rating must not be greater than 5", domain.ErrValidation)
	}
	return nil
}

// Create accepts a review for one purchased order line. The product_uid must
// match a line of the given order, and each line can be reviewed once.
func (uc *ReviewUC) Create(ctx context.Context, in NewReview) (*domain.Review, error) {
	if strings.TrimSpace(in.Review) == "" {
		return nil, fmt.Errorf("%w: review text is required", domain.ErrValidation)
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}

	user, err := uc.Users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if _, err := uc.Products.FindByID(ctx, in.ProductID); err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	line, err := uc.Orders.FindLineByUID(ctx, in.ProductUID)
	if err != nil {
		return nil, fmt.Errorf("resolve ordered product: %w", err)
	}
	if line.OrderID != in.OrderID || line.ProductID != in.ProductID {
		return nil, fmt.Errorf("%w: product_uid does not belong to this order", domain.ErrValidation)
	}

	if _, err := uc.Reviews.FindByProductUID(ctx, in.ProductUID); err == nil {
		return nil, fmt.Errorf("%w: already reviewed", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	r := &domain.Review{
		ID:         uuid.New(),
		UserID:     user.ID,
		UserName:   user.Name,
		UserImage:  user.Image,
		ProductID:  in.ProductID,
		OrderID:    in.OrderID,
		ProductUID: in.ProductUID,
		Review:     strings.TrimSpace(in.Review),
		Rating:     in.Rating,
	}
	if len(in.ImageData) > 0 {
		obj, err := uc.Storage.Put(in.ImageData, in.ImageType)
		if err != nil {
			return nil, fmt.Errorf("upload review image: %w", err)
		}
		r.ProductImage = domain.Image{Key: obj.Key, URL: obj.URL}
	}

	if err := uc.Reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	if err := uc.refreshProductRating(ctx, in.ProductID); err != nil {
		return nil, err
	}
	return r, nil
}

func (uc *ReviewUC) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	return uc.Reviews.FindByID(ctx, id)
}

func (uc *ReviewUC) List(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Reviews.List(ctx, f)
}

// Update edits a review in place and recomputes the product aggregate.
func (uc *ReviewUC) Update(ctx context.Context, id uuid.UUID, text string, rating float64) (*domain.Review, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: review text is required", domain.ErrValidation)
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	r, err := uc.Reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Review = strings.TrimSpace(text)
	r.Rating = rating
	if err := uc.Reviews.Update(ctx, r); err != nil {
		return nil, err
	}
	if err := uc.refreshProductRating(ctx, r.ProductID); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a review along with its uploaded image, then refreshes the
// product aggregate so the rating no longer reflects it.
func (uc *ReviewUC) Delete(ctx context.Context, id uuid.UUID) error {
	r, err := uc.Reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r.ProductImage.Key != "" {
		if err := uc.Storage.Delete(r.ProductImage.Key); err != nil {
			log.Warn().Err(err).Str("key", r.ProductImage.Key).Msg("remove review image blob")
		}
	}
	if err := uc.Reviews.Delete(ctx, id); err != nil {
		return err
	}
	return uc.refreshProductRating(ctx, r.ProductID)
}

// refreshProductRating recomputes the aggregate from the reviews table and
// writes it through the catalog, which also re-derives the tier.
func (uc *ReviewUC) refreshProductRating(ctx context.Context, productID uuid.UUID) error {
	total, average, err := uc.Reviews.RatingSummary(ctx, productID)
	if err != nil {
		return fmt.Errorf("aggregate reviews for product %s: %w", productID, err)
	}
	return uc.Products.UpdateRatingAndTier(ctx, productID, total, average)
}
