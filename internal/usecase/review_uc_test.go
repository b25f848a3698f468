package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

type reviewFixture struct {
	uc       *ReviewUC
	products *fakeProductRepo
	reviews  *fakeReviewRepo
	storage  *fakeStorage
	user     *domain.User
	product  *domain.Product
	order    *domain.Order
}

// newReviewFixture seeds a user, a product and one placed order so that tests
// hold a real purchased line to review.
func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	reviews := newFakeReviewRepo()
	users := newFakeUserRepo()
	storage := newFakeStorage()

	user := seedUser(t, users)
	product := seedProduct(t, products, "Denim Jeans", 55, 40)

	orderUC := newOrderUC(products, orders, users, &fakeGateway{})
	order, err := orderUC.Place(context.Background(), user.ID, domain.ShippingAddress{}, []CartItem{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	return &reviewFixture{
		uc: &ReviewUC{
			Reviews:  reviews,
			Products: products,
			Orders:   orders,
			Users:    users,
			Storage:  storage,
		},
		products: products,
		reviews:  reviews,
		storage:  storage,
		user:     user,
		product:  product,
		order:    order,
	}
}

func (fx *reviewFixture) newReview(rating float64) NewReview {
	return NewReview{
		UserID:     fx.user.ID,
		OrderID:    fx.order.ID,
		ProductID:  fx.product.ID,
		ProductUID: fx.order.Lines[0].ProductUID,
		Review:     "great fit",
		Rating:     rating,
	}
}

func TestCreateReview(t *testing.T) {
	fx := newReviewFixture(t)

	r, err := fx.uc.Create(context.Background(), fx.newReview(4.5))
	require.NoError(t, err)
	assert.Equal(t, fx.user.Name, r.UserName)
	assert.Equal(t, fx.order.Lines[0].ProductUID, r.ProductUID)

	p := fx.products.snapshot(fx.product.ID)
	assert.Equal(t, 1, p.TotalReviews)
	assert.InDelta(t, 4.5, p.AverageRating, 0.001)
	assert.Equal(t, domain.TopCategoryFeatured, p.TopCategory)
}

func TestCreateReviewOncePerPurchasedLine(t *testing.T) {
	fx := newReviewFixture(t)

	_, err := fx.uc.Create(context.Background(), fx.newReview(5))
	require.NoError(t, err)

	_, err = fx.uc.Create(context.Background(), fx.newReview(1))
	assert.ErrorIs(t, err, domain.ErrConflict)

	p := fx.products.snapshot(fx.product.ID)
	assert.Equal(t, 1, p.TotalReviews)
}

func TestCreateReviewUIDMustMatchOrder(t *testing.T) {
	fx := newReviewFixture(t)

	in := fx.newReview(4)
	in.OrderID = uuid.New()
	_, err := fx.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = fx.newReview(4)
	in.ProductUID = uuid.New()
	_, err = fx.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateReviewValidation(t *testing.T) {
	fx := newReviewFixture(t)

	in := fx.newReview(4)
	in.Review = "   "
	_, err := fx.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = fx.uc.Create(context.Background(), fx.newReview(5.5))
	assert.ErrorIs(t, err, domain.ErrValidation)

	// No lower bound on rating.
	_, err = fx.uc.Create(context.Background(), fx.newReview(-1))
	require.NoError(t, err)
}

func TestCreateReviewWithImage(t *testing.T) {
	fx := newReviewFixture(t)

	in := fx.newReview(4)
	in.ImageData = []byte("jpeg-bytes")
	in.ImageType = "image/jpeg"
	r, err := fx.uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, r.ProductImage.Key)
	assert.Contains(t, fx.storage.objects, r.ProductImage.Key)
}

func TestUpdateReviewRecomputesAggregate(t *testing.T) {
	fx := newReviewFixture(t)

	r, err := fx.uc.Create(context.Background(), fx.newReview(3))
	require.NoError(t, err)

	updated, err := fx.uc.Update(context.Background(), r.ID, "even better after a wash", 5)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, updated.Rating, 0.001)

	p := fx.products.snapshot(fx.product.ID)
	assert.InDelta(t, 5.0, p.AverageRating, 0.001)
	assert.Equal(t, domain.TopCategoryHighestRated, p.TopCategory)

	_, err = fx.uc.Update(context.Background(), r.ID, "", 4)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = fx.uc.Update(context.Background(), uuid.New(), "text", 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteReviewRecomputesAggregateAndDropsImage(t *testing.T) {
	fx := newReviewFixture(t)

	in := fx.newReview(4.9)
	in.ImageData = []byte("png-bytes")
	in.ImageType = "image/png"
	r, err := fx.uc.Create(context.Background(), in)
	require.NoError(t, err)

	require.NoError(t, fx.uc.Delete(context.Background(), r.ID))
	assert.Contains(t, fx.storage.deleted, r.ProductImage.Key)

	p := fx.products.snapshot(fx.product.ID)
	assert.Equal(t, 0, p.TotalReviews)
	assert.InDelta(t, 0.0, p.AverageRating, 0.001)
	assert.Equal(t, domain.TopCategoryRegular, p.TopCategory)

	assert.ErrorIs(t, fx.uc.Delete(context.Background(), r.ID), domain.ErrNotFound)
}
