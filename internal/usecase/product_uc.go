package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
	Orders   domain.OrderRepo
	Storage  domain.FileStorage
}

type NewProduct struct {
	Name          string
	Description   string
	OriginalPrice float64
	Discount      int
	InStock       int
	Colors        []string
	Sizes         []domain.Size
	Brand         string
	Category      domain.Category
	ProductType   string
	Gender        domain.Gender
	ImageData     []byte
	ImageType     string
}

func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

func (uc *ProductUC) Create(ctx context.Context, in NewProduct) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: name and description are required", domain.ErrValidation)
	}
	if in.OriginalPrice <= 0 {
		return nil, fmt.Errorf("%w: original price must be positive", domain.ErrValidation)
	}

	price, discount := domain.ApplyPricing(in.OriginalPrice, in.Discount)
	p := &domain.Product{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(in.Name),
		Slug:          slugify(in.Name),
		Description:   strings.TrimSpace(in.Description),
		OriginalPrice: in.OriginalPrice,
		Price:         price,
		Discount:      discount,
		InStock:       in.InStock,
		Colors:        in.Colors,
		Sizes:         in.Sizes,
		Brand:         in.Brand,
		Category:      in.Category,
		ProductType:   in.ProductType,
		Gender:        in.Gender,
		Status:        domain.ProductStatusActive,
		TopCategory:   domain.TopCategoryRegular,
	}

	if len(in.ImageData) > 0 {
		obj, err := uc.Storage.Put(in.ImageData, in.ImageType)
		if err != nil {
			return nil, fmt.Errorf("upload product image: %w", err)
		}
		p.Image = domain.Image{Key: obj.Key, URL: obj.URL}
	}

	if err := uc.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetBy resolves a product by id, slug or name.
func (uc *ProductUC) GetBy(ctx context.Context, key, value string) (*domain.Product, error) {
	switch key {
	case "id":
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("%w: product id", domain.ErrValidation)
		}
		return uc.Products.FindByID(ctx, id)
	case "slug":
		return uc.Products.FindBySlug(ctx, value)
	case "name":
		return uc.Products.FindByName(ctx, value)
	}
	return nil, fmt.Errorf("%w: unknown lookup key %q", domain.ErrValidation, key)
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Products.List(ctx, f)
}

// UpdateImage replaces the catalog image and pushes the new key/url into
// every order-line snapshot of this product. Reviews keep their own
// reviewer-supplied image. Propagation failures are logged, never surfaced.
func (uc *ProductUC) UpdateImage(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*domain.Product, error) {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Image.Key != "" {
		if err := uc.Storage.Delete(p.Image.Key); err != nil {
			log.Warn().Err(err).Str("key", p.Image.Key).Msg("remove old product image")
		}
	}
	obj, err := uc.Storage.Put(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload product image: %w", err)
	}
	img := domain.Image{Key: obj.Key, URL: obj.URL}
	if err := uc.Products.UpdateImage(ctx, id, img); err != nil {
		return nil, err
	}
	p.Image = img

	referenced, err := uc.Orders.HasLinesForProduct(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("product_id", id.String()).Msg("check order lines for image propagation")
		return p, nil
	}
	if referenced {
		if err := uc.Orders.UpdateLineImage(ctx, id, img); err != nil {
			log.Error().Err(err).Str("product_id", id.String()).Msg("propagate image to order lines")
		}
	}
	return p, nil
}

func (uc *ProductUC) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProductStatus) error {
	if status != domain.ProductStatusActive && status != domain.ProductStatusInactive {
		return fmt.Errorf("%w: status must be active or inactive", domain.ErrValidation)
	}
	if _, err := uc.Products.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.Products.UpdateStatus(ctx, id, status)
}

func (uc *ProductUC) UpdateStock(ctx context.Context, id uuid.UUID, inStock int) error {
	if inStock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}
	if _, err := uc.Products.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.Products.UpdateStock(ctx, id, inStock)
}

// UpdateDiscount applies a new discount percentage. Unlike creation, where an
// out-of-range discount is silently dropped, an explicit discount update must
// be within range.
func (uc *ProductUC) UpdateDiscount(ctx context.Context, id uuid.UUID, discount int) (*domain.Product, error) {
	if discount < 5 || discount > 15 {
		return nil, fmt.Errorf("%w: discount must be between 5 and 15 percent", domain.ErrValidation)
	}
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	price, applied := domain.ApplyPricing(p.OriginalPrice, discount)
	if err := uc.Products.UpdatePricing(ctx, id, p.OriginalPrice, applied, price); err != nil {
		return nil, err
	}
	p.Discount = applied
	p.Price = price
	return p, nil
}

// Delete removes a product. The stored image blob is removed only when no
// historical order line still references the product, so old order snapshots
// keep a working image link.
func (uc *ProductUC) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	referenced, err := uc.Orders.HasLinesForProduct(ctx, id)
	if err != nil {
		return err
	}
	if !referenced && p.Image.Key != "" {
		if err := uc.Storage.Delete(p.Image.Key); err != nil {
			log.Warn().Err(err).Str("key", p.Image.Key).Msg("remove product image blob")
		}
	}
	return uc.Products.Delete(ctx, id)
}
