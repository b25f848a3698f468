package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	var list []domain.Product
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	switch f.Stock {
	case domain.StockIn:
		q = q.Where("in_stock >= 1")
	case domain.StockOut:
		q = q.Where("in_stock < 1")
	}
	if f.Discounted {
		q = q.Where("discount >= 5")
	}
	if f.TopCategory != "" {
		q = q.Where("top_category = ? AND in_stock >= 1 AND status = ?", f.TopCategory, domain.ProductStatusActive)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	offset := (f.Page - 1) * f.PageSize
	if err := q.Order("created_at desc").Offset(offset).Limit(f.PageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ProductRepo) UpdateImage(ctx context.Context, id uuid.UUID, img domain.Image) error {
	return r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).
		Updates(map[string]any{"image_key": img.Key, "image_url": img.URL}).Error
}

func (r *ProductRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProductStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id uuid.UUID, inStock int) error {
	return r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).
		Update("in_stock", inStock).Error
}

func (r *ProductRepo) UpdatePricing(ctx context.Context, id uuid.UUID, originalPrice float64, discount int, price float64) error {
	return r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).
		Updates(map[string]any{"original_price": originalPrice, "discount": discount, "price": price}).Error
}

// AddSales bumps the sales counter and takes the same quantity off stock in a
// single statement, so concurrent orders for one product never lose updates.
// Stock may go negative; callers own any floor policy.
func (r *ProductRepo) AddSales(ctx context.Context, id uuid.UUID, qty int) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).
		Updates(map[string]any{
			"sales":    gorm.Expr("sales + ?", qty),
			"in_stock": gorm.Expr("in_stock - ?", qty),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateRatingAndTier stores a fresh review aggregate and re-derives the
// product's top_category from it together with the current sales count.
func (r *ProductRepo) UpdateRatingAndTier(ctx context.Context, id uuid.UUID, totalReviews int, averageRating float64) error {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	tier := domain.ClassifyTopCategory(averageRating, p.Sales)
	return r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).
		Updates(map[string]any{
			"total_reviews":  totalReviews,
			"average_rating": averageRating,
			"top_category":   tier,
		}).Error
}

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
}
