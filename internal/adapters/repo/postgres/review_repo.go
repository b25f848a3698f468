package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Create(ctx context.Context, rev *domain.Review) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("product_uid = ?", rev.ProductUID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	// The unique index on product_uid backstops the race between the check
	// and the insert.
	return r.db.WithContext(ctx).Create(rev).Error
}

func (r *ReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	var rev domain.Review
	if err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepo) FindByProductUID(ctx context.Context, productUID uuid.UUID) (*domain.Review, error) {
	var rev domain.Review
	if err := r.db.WithContext(ctx).First(&rev, "product_uid = ?", productUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepo) List(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, int64, error) {
	var list []domain.Review
	q := r.db.WithContext(ctx).Model(&domain.Review{})
	if f.ProductID != uuid.Nil {
		q = q.Where("product_id = ?", f.ProductID)
	}
	if f.UserID != uuid.Nil {
		q = q.Where("user_id = ?", f.UserID)
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

func (r *ReviewRepo) Update(ctx context.Context, rev *domain.Review) error {
	return r.db.WithContext(ctx).Save(rev).Error
}

func (r *ReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Review{}).Error
}

func (r *ReviewRepo) UpdateUserName(ctx context.Context, userID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("user_id = ?", userID).Update("user_name", name).Error
}

func (r *ReviewRepo) UpdateUserImage(ctx context.Context, userID uuid.UUID, img domain.Image) error {
	return r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"user_image_key": img.Key, "user_image_url": img.URL}).Error
}

// RatingSummary recomputes the aggregate from every review of the product.
// A full scan each time keeps the mean exact instead of drifting through
// incremental updates.
func (r *ReviewRepo) RatingSummary(ctx context.Context, productID uuid.UUID) (int, float64, error) {
	var row struct {
		Total   int64
		Average sql.NullFloat64
	}
	if err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("COUNT(*) AS total, AVG(rating) AS average").
		Where("product_id = ?", productID).
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return int(row.Total), row.Average.Float64, nil
}
