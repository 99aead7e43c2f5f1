package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lodging_backend/internal/app/router"
	authadapters "lodging_backend/internal/feature/auth/adapters"
	authhandler "lodging_backend/internal/feature/auth/transport/handler"
	authusecase "lodging_backend/internal/feature/auth/usecase"
	favoriteadapters "lodging_backend/internal/feature/favorite/adapters"
	favoritehandler "lodging_backend/internal/feature/favorite/transport/handler"
	favoriteusecase "lodging_backend/internal/feature/favorite/usecase"
	househandler "lodging_backend/internal/feature/house/transport/handler"
	houseusecase "lodging_backend/internal/feature/house/usecase"
	reservationadapters "lodging_backend/internal/feature/reservation/adapters"
	reservationhandler "lodging_backend/internal/feature/reservation/transport/handler"
	reservationusecase "lodging_backend/internal/feature/reservation/usecase"
	reviewadapters "lodging_backend/internal/feature/review/adapters"
	reviewhandler "lodging_backend/internal/feature/review/transport/handler"
	reviewusecase "lodging_backend/internal/feature/review/usecase"
	"lodging_backend/internal/platform/config"
	platformdb "lodging_backend/internal/platform/db"
	jwt "lodging_backend/internal/platform/jwt"
	"lodging_backend/internal/platform/mail"
	"lodging_backend/internal/platform/metrics"
)

// Deps は起動時に生成済みの外部リソースです。Redis は nil でも動作します。
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Images   houseusecase.ImageStorage
	Checkout reservationusecase.CheckoutGateway
	Mailer   authusecase.VerificationMailer
	Metrics  *metrics.Collector
}

// NewHandlers はリポジトリ・ユースケース・ハンドラーを組み立てます。
func NewHandlers(d Deps) router.Handlers {
	cfg := d.Config

	var m interface {
		authusecase.Metrics
		reservationusecase.Metrics
	} = metrics.Noop{}
	if d.Metrics != nil {
		m = d.Metrics
	}

	mailer := d.Mailer
	if mailer == nil {
		mailer = mail.NewMailer(cfg.SMTP)
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(d.DB)
	roleRepo := authadapters.NewRoleMySQL(d.DB)
	tokenRepo := authadapters.NewVerificationTokenMySQL(d.DB)
	houseRepo := NewHouseRepository(d.Redis, d.DB, cfg.Redis.CacheTTL)
	reviewRepo := reviewadapters.NewReviewMySQL(d.DB)
	favoriteRepo := favoriteadapters.NewFavoriteMySQL(d.DB)
	reservationRepo := reservationadapters.NewReservationMySQL(d.DB)
	eventGuard := reservationadapters.NewEventGuardRedis(d.Redis, "webhook:event", 0)

	// Usecase
	authUC := authusecase.NewAuthUsecase(
		userRepo, roleRepo, tokenRepo,
		platformdb.NewTransactor(d.DB),
		jwt.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expiration),
		mailer, m,
		authusecase.Options{BaseURL: cfg.App.BaseURL, TokenTTL: cfg.App.VerificationTokenTTL},
	)
	userUC := authusecase.NewUserUsecase(userRepo)
	houseUC := houseusecase.NewHouseUsecase(houseRepo, d.Images)
	reviewUC := reviewusecase.NewReviewUsecase(reviewRepo, houseRepo)
	favoriteUC := favoriteusecase.NewFavoriteUsecase(favoriteRepo, houseRepo)
	reservationUC := reservationusecase.NewReservationUsecase(reservationRepo, houseRepo, d.Checkout, m, cfg.App.BaseURL)
	webhookUC := reservationusecase.NewWebhookUsecase(d.Checkout, reservationUC, eventGuard, m)

	// Handler
	return router.Handlers{
		Auth:        authhandler.NewAuthHandler(authUC),
		User:        authhandler.NewUserHandler(userUC),
		AdminUser:   authhandler.NewAdminUserHandler(userUC),
		House:       househandler.NewHouseHandler(houseUC, reviewUC, favoriteUC),
		AdminHouse:  househandler.NewAdminHouseHandler(houseUC),
		Review:      reviewhandler.NewReviewHandler(reviewUC),
		Favorite:    favoritehandler.NewFavoriteHandler(favoriteUC),
		Reservation: reservationhandler.NewReservationHandler(reservationUC),
		Webhook:     reservationhandler.NewWebhookHandler(webhookUC),
	}
}
