package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

// OrderUC places orders and manages their lifecycle. Placement is a strict
// sequence: resolve user, resolve and snapshot every cart entry, create the
// payment intent, persist order and lines. Stock bookkeeping runs after the
// fact, best effort.
type OrderUC struct {
	Orders   domain.OrderRepo
	Products domain.ProductRepo
	Users    domain.UserRepo
	Gateway  domain.PaymentGateway

	// Currency passed to the payment gateway, "usd" by default.
	Currency string
}

type CartItem struct {
	ProductID uuid.UUID
	Quantity  int
	Color     string
	Size      domain.Size
}

func (uc *OrderUC) currency() string {
	if uc.Currency == "" {
		return "usd"
	}
	return uc.Currency
}

// Place validates the cart against the catalog, charges the gateway and
// persists the order. The stored lines are point-in-time snapshots: later
// catalog price edits never change this order's total or line prices.
func (uc *OrderUC) Place(ctx context.Context, userID uuid.UUID, addr domain.ShippingAddress, items []CartItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one product", domain.ErrValidation)
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
		}
	}

	if _, err := uc.Users.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	// Fail fast: one bad product id aborts the whole order, nothing is
	// persisted.
	now := time.Now()
	lines := make([]domain.OrderLine, 0, len(items))
	total := 0.0
	for _, it := range items {
		p, err := uc.Products.FindByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product %s: %w", it.ProductID, err)
		}
		lines = append(lines, domain.OrderLine{
			ProductID:   p.ID,
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			Image:       p.Image,
			Price:       p.Price,
			Quantity:    it.Quantity,
			Color:       it.Color,
			Size:        it.Size,
			Brand:       p.Brand,
			Category:    p.Category,
			ProductType: p.ProductType,
			Gender:      p.Gender,
			OrderedAt:   now,
		})
		total += p.Price * float64(it.Quantity)
	}

	intent, err := uc.Gateway.CreateIntent(ctx, int64(math.Round(total*100)), uc.currency())
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Lines:           lines,
		Status:          domain.OrderStatusPending,
		TotalCost:       total,
		PaymentIntent:   intent.ID,
		ClientSecret:    intent.ClientSecret,
		ShippingAddress: addr,
	}
	if err := uc.Orders.Create(ctx, order); err != nil {
		// The intent stays orphaned at the processor; reconciliation is a
		// separate concern.
		return nil, fmt.Errorf("persist order %s: %w", order.ID, err)
	}

	go uc.applySales(order)

	return order, nil
}

// applySales increments sales and decrements stock for every line of a placed
// order. The order is already committed: failures here are logged and the
// response is not held back for them.
func (uc *OrderUC) applySales(o *domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, line := range o.Lines {
		if err := uc.Products.AddSales(ctx, line.ProductID, line.Quantity); err != nil {
			log.Error().Err(err).
				Str("order_id", o.ID.String()).
				Str("product_id", line.ProductID.String()).
				Int("quantity", line.Quantity).
				Msg("stock/sales update after order placement")
		}
	}
}

func (uc *OrderUC) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return uc.Orders.FindByID(ctx, id)
}

func (uc *OrderUC) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	if f.UserID != uuid.Nil {
		if _, err := uc.Users.FindByID(ctx, f.UserID); err != nil {
			return nil, 0, fmt.Errorf("resolve user: %w", err)
		}
	}
	return uc.Orders.List(ctx, f)
}

// Lines lists order-line snapshots across orders, filtered by order, user or
// product.
func (uc *OrderUC) Lines(ctx context.Context, f domain.LineFilter) ([]domain.OrderLine, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Orders.ListLines(ctx, f)
}

// UpdateStatus moves an order to a new lifecycle status. Setting the status
// it already has is rejected; transitions are otherwise unordered single-step
// writes driven by staff.
func (uc *OrderUC) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrValidation, status)
	}
	o, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status == status {
		return nil, fmt.Errorf("%w: order status is already %s", domain.ErrConflict, status)
	}
	if err := uc.Orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	o.Status = status
	return o, nil
}

// Delete removes an order, refused while it is still being fulfilled.
func (uc *OrderUC) Delete(ctx context.Context, id uuid.UUID) error {
	o, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !o.Deletable() {
		return fmt.Errorf("%w: order with status %q can not be deleted", domain.ErrConflict, o.Status)
	}
	return uc.Orders.Delete(ctx, id)
}
