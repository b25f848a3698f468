package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create persists the order and its lines in one transaction. Every line
// gets a fresh product_uid here, so two lines for the same product, in the
// same order or across orders, never share one.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := time.Now()
	for i := range o.Lines {
		line := &o.Lines[i]
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		line.OrderID = o.ID
		line.ProductUID = uuid.New()
		if line.OrderedAt.IsZero() {
			line.OrderedAt = now
		}
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Create(o).Error; err != nil {
			return err
		}
		if len(o.Lines) > 0 {
			if err := tx.Create(&o.Lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *OrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Lines").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	var list []domain.Order
	q := r.db.WithContext(ctx).Model(&domain.Order{})
	if f.UserID != uuid.Nil {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ProductID != uuid.Nil {
		q = q.Distinct("orders.*").
			Joins("JOIN order_lines ON order_lines.order_id = orders.id").
			Where("order_lines.product_id = ?", f.ProductID)
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
	if err := q.Order("orders.created_at desc").Offset(offset).Limit(f.PageSize).
		Preload("Lines").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListLines queries line snapshots as a flat collection across all orders,
// the relational form of the embedded-array unwind the API exposes.
func (r *OrderRepo) ListLines(ctx context.Context, f domain.LineFilter) ([]domain.OrderLine, int64, error) {
	var list []domain.OrderLine
	q := r.db.WithContext(ctx).Model(&domain.OrderLine{})
	if f.OrderID != uuid.Nil {
		q = q.Where("order_lines.order_id = ?", f.OrderID)
	}
	if f.ProductID != uuid.Nil {
		q = q.Where("order_lines.product_id = ?", f.ProductID)
	}
	if f.UserID != uuid.Nil {
		q = q.Joins("JOIN orders ON orders.id = order_lines.order_id").
			Where("orders.user_id = ?", f.UserID)
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
	if err := q.Order("order_lines.ordered_at desc").Offset(offset).Limit(f.PageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *OrderRepo) FindLineByUID(ctx context.Context, productUID uuid.UUID) (*domain.OrderLine, error) {
	var line domain.OrderLine
	if err := r.db.WithContext(ctx).First(&line, "product_uid = ?", productUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

func (r *OrderRepo) HasLinesForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.OrderLine{}).
		Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateLineImage rewrites the image snapshot on every line referencing the
// product, one bulk statement across all orders.
func (r *OrderRepo) UpdateLineImage(ctx context.Context, productID uuid.UUID, img domain.Image) error {
	return r.db.WithContext(ctx).Model(&domain.OrderLine{}).
		Where("product_id = ?", productID).
		Updates(map[string]any{"image_key": img.Key, "image_url": img.URL}).Error
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, "id = ?", id).Error
	})
}
