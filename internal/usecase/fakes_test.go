package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product

	failAddSales bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uuid.UUID]*domain.Product{}}
}

func (f *fakeProductRepo) get(id uuid.UUID) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.products {
		if existing.Name == p.Name {
			return fmt.Errorf("%w: product name already exists", domain.ErrConflict)
		}
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Save(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, err := f.get(id)
	if err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.products {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) UpdateImage(ctx context.Context, id uuid.UUID, img domain.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, err := f.get(id)
	if err != nil {
		return err
	}
	p.Image = img
	return nil
}

func (f *fakeProductRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProductStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, err := f.get(id)
	if err != nil {
		return err
	}
	p.Status = status
	return nil
}

func (f *fakeProductRepo) UpdateStock(ctx context.Context, id uuid.UUID, inStock int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, err := f.get(id)
	if err != nil {
		return err
	}
	p.InStock = inStock
	return nil
}

func (f *fakeProductRepo) UpdatePricing(ctx context.Context, id uuid.UUID, originalPrice float64, discount int, price float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, err := f.get(id)
	if err != nil {
		return err
	}
	p.OriginalPrice = originalPrice
	p.Discount = discount
	p.Price = price
	return nil
}

func (f *fakeProductRepo) AddSales(ctx context.Context, id uuid.UUID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAddSales {
		return fmt.Errorf("add sales: boom")
	}
	p, err := f.get(id)
	if err != nil {
		return err
	}
	p.Sales += qty
	p.InStock -= qty
	return nil
}

func (f *fakeProductRepo) UpdateRatingAndTier(ctx context.Context, id uuid.UUID, totalReviews int, averageRating float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, err := f.get(id)
	if err != nil {
		return err
	}
	p.TotalReviews = totalReviews
	p.AverageRating = averageRating
	p.TopCategory = domain.ClassifyTopCategory(averageRating, p.Sales)
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

// snapshot returns a copy of the stored product for assertions.
func (f *fakeProductRepo) snapshot(id uuid.UUID) domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.products[id]
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.Order

	failCreate bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*domain.Order{}}
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return fmt.Errorf("insert order: boom")
	}
	now := time.Now()
	for i := range o.Lines {
		o.Lines[i].ID = uuid.New()
		o.Lines[i].OrderID = o.ID
		o.Lines[i].ProductUID = uuid.New()
		if o.Lines[i].OrderedAt.IsZero() {
			o.Lines[i].OrderedAt = now
		}
	}
	cp := *o
	cp.Lines = append([]domain.OrderLine(nil), o.Lines...)
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	cp.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &cp, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for _, o := range f.orders {
		if filter.UserID != uuid.Nil && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) ListLines(ctx context.Context, filter domain.LineFilter) ([]domain.OrderLine, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.OrderLine
	for _, o := range f.orders {
		for _, line := range o.Lines {
			if filter.OrderID != uuid.Nil && line.OrderID != filter.OrderID {
				continue
			}
			if filter.UserID != uuid.Nil && o.UserID != filter.UserID {
				continue
			}
			if filter.ProductID != uuid.Nil && line.ProductID != filter.ProductID {
				continue
			}
			out = append(out, line)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) FindLineByUID(ctx context.Context, productUID uuid.UUID) (*domain.OrderLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		for _, line := range o.Lines {
			if line.ProductUID == productUID {
				cp := line
				return &cp, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOrderRepo) HasLinesForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		for _, line := range o.Lines {
			if line.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) UpdateLineImage(ctx context.Context, productID uuid.UUID, img domain.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		for i := range o.Lines {
			if o.Lines[i].ProductID == productID {
				o.Lines[i].Image = img
			}
		}
	}
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uuid.UUID]*domain.Review{}}
}

func (f *fakeReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reviews {
		if existing.ProductUID == r.ProductUID {
			return fmt.Errorf("%w: already reviewed", domain.ErrConflict)
		}
	}
	cp := *r
	f.reviews[r.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewRepo) FindByProductUID(ctx context.Context, productUID uuid.UUID) (*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.ProductUID == productUID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeReviewRepo) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Review
	for _, r := range f.reviews {
		if filter.ProductID != uuid.Nil && r.ProductID != filter.ProductID {
			continue
		}
		if filter.UserID != uuid.Nil && r.UserID != filter.UserID {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, r *domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[r.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *r
	f.reviews[r.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) UpdateUserName(ctx context.Context, userID uuid.UUID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.UserID == userID {
			r.UserName = name
		}
	}
	return nil
}

func (f *fakeReviewRepo) UpdateUserImage(ctx context.Context, userID uuid.UUID, img domain.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.UserID == userID {
			r.UserImage = img
		}
	}
	return nil
}

func (f *fakeReviewRepo) RatingSummary(ctx context.Context, productID uuid.UUID) (int, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	sum := 0.0
	for _, r := range f.reviews {
		if r.ProductID == productID {
			total++
			sum += r.Rating
		}
	}
	if total == 0 {
		return 0, 0, nil
	}
	return total, sum / float64(total), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*domain.User{}}
}

func (f *fakeUserRepo) Save(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Name = name
	return nil
}

func (f *fakeUserRepo) UpdateImage(ctx context.Context, id uuid.UUID, img domain.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Image = img
	return nil
}

type fakeGateway struct {
	mu           sync.Mutex
	fail         bool
	calls        int
	lastAmount   int64
	lastCurrency string
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string) (*domain.PaymentIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastAmount = amountMinor
	f.lastCurrency = currency
	if f.fail {
		return nil, fmt.Errorf("%w: card declined", domain.ErrGateway)
	}
	return &domain.PaymentIntent{
		ID:           fmt.Sprintf("pi_test_%d", f.calls),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", f.calls),
	}, nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	puts    int
	failPut bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Put(data []byte, contentType string) (*domain.StoredObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut {
		return nil, fmt.Errorf("storage unavailable")
	}
	f.puts++
	key := fmt.Sprintf("obj-%d", f.puts)
	f.objects[key] = data
	return &domain.StoredObject{Key: key, URL: "/uploads/" + key}, nil
}

func (f *fakeStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}
