package app

import (
	"net/http"
	"os"

	"gorm.io/gorm"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/adapters/httpserver"
	"github.com/mehedihasanwd/easy-cart-api-v2/internal/adapters/payments/stripe"
	"github.com/mehedihasanwd/easy-cart-api-v2/internal/adapters/repo/postgres"
	"github.com/mehedihasanwd/easy-cart-api-v2/internal/adapters/storage/localfs"
	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
	"github.com/mehedihasanwd/easy-cart-api-v2/internal/usecase"
)

type App struct {
	DB        *gorm.DB
	ProductUC *usecase.ProductUC
	OrderUC   *usecase.OrderUC
	ReviewUC  *usecase.ReviewUC
	UserUC    *usecase.UserUC
	Storage   domain.FileStorage
}

func NewApp(db *gorm.DB) (*App, error) {
	productRepo := postgres.NewProductRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	userRepo := postgres.NewUserRepo(db)

	storageDir := os.Getenv("STORAGE_DIR")
	if storageDir == "" {
		storageDir = "uploads"
	}
	_ = os.MkdirAll(storageDir, 0755)
	storage := localfs.New(storageDir)

	gateway := stripe.NewGateway(os.Getenv("STRIPE_SECRET_KEY"))

	app := &App{DB: db, Storage: storage}
	app.ProductUC = &usecase.ProductUC{Products: productRepo, Orders: orderRepo, Storage: storage}
	app.OrderUC = &usecase.OrderUC{
		Orders:   orderRepo,
		Products: productRepo,
		Users:    userRepo,
		Gateway:  gateway,
		Currency: os.Getenv("PAYMENT_CURRENCY"),
	}
	app.ReviewUC = &usecase.ReviewUC{
		Reviews:  reviewRepo,
		Products: productRepo,
		Orders:   orderRepo,
		Users:    userRepo,
		Storage:  storage,
	}
	app.UserUC = &usecase.UserUC{Users: userRepo, Reviews: reviewRepo, Storage: storage}

	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.ProductUC, a.OrderUC, a.ReviewUC, a.UserUC)
}

func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(
		&domain.Product{}, &domain.Order{}, &domain.OrderLine{}, &domain.Review{}, &domain.User{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_order_lines_order_product ON order_lines (order_id, product_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_reviews_product_user ON reviews (product_id, user_id)").Error

	return nil
}
