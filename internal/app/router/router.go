// Package router はHTTPルーティングの定義を提供します。
package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	authentity "lodging_backend/internal/feature/auth/domain/entity"
	authhandler "lodging_backend/internal/feature/auth/transport/handler"
	favoritehandler "lodging_backend/internal/feature/favorite/transport/handler"
	househandler "lodging_backend/internal/feature/house/transport/handler"
	reservationhandler "lodging_backend/internal/feature/reservation/transport/handler"
	reviewhandler "lodging_backend/internal/feature/review/transport/handler"
	platformhandler "lodging_backend/internal/platform/http/handler"
	"lodging_backend/internal/platform/http/middleware"
	jwtmw "lodging_backend/internal/platform/jwt"
	"lodging_backend/internal/platform/metrics"
	"lodging_backend/internal/shared/ratelimiter"
)

// Handlers はルーターに登録する各フィーチャーのハンドラーです。
type Handlers struct {
	Auth        *authhandler.AuthHandler
	User        *authhandler.UserHandler
	AdminUser   *authhandler.AdminUserHandler
	House       *househandler.HouseHandler
	AdminHouse  *househandler.AdminHouseHandler
	Review      *reviewhandler.ReviewHandler
	Favorite    *favoritehandler.FavoriteHandler
	Reservation *reservationhandler.ReservationHandler
	Webhook     *reservationhandler.WebhookHandler
}

// Options はルーター全体に関わる設定です。nil のフィールドは該当機能を無効にします。
type Options struct {
	JWTSecret   string
	Logger      *slog.Logger
	Metrics     *metrics.Collector
	Gatherer    prometheus.Gatherer
	AuthLimiter *ratelimiter.RateLimiter
	Images      http.FileSystem
	Ready       map[string]platformhandler.Pinger
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.GET("/readyz", platformhandler.Ready(opts.Ready))
	if opts.Gatherer != nil {
		r.GET("/metrics", metrics.Handler(opts.Gatherer))
	}
	if opts.Images != nil {
		r.StaticFS("/storage", opts.Images)
	}

	// 決済プロバイダーからの通知（署名で認証する）
	r.POST("/stripe/webhook", h.Webhook.Handle)

	// 会員登録・ログインはレート制限付き
	limited := r.Group("/")
	if opts.AuthLimiter != nil {
		limited.Use(opts.AuthLimiter.Middleware("auth"))
	}
	{
		limited.POST("/signup", h.Auth.Signup)
		limited.POST("/login", h.Auth.Login)
	}
	r.GET("/signup/verify", h.Auth.Verify)

	// 認証不要（ログイン中ならお気に入り状態などを返す）
	public := r.Group("/")
	public.Use(jwtmw.OptionalAuth(opts.JWTSecret))
	{
		public.GET("/", h.House.Home)
		public.GET("/houses", h.House.Index)
		public.GET("/houses/:id", h.House.Show)
		public.GET("/houses/:id/reviews", h.Review.List)
	}

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opts.JWTSecret))
	{
		auth.GET("/users/me", h.User.Me)
		auth.PUT("/users/me", h.User.UpdateMe)

		auth.POST("/houses/:id/reviews", h.Review.Create)
		auth.PUT("/houses/:id/reviews/:reviewId", h.Review.Update)
		auth.DELETE("/houses/:id/reviews/:reviewId", h.Review.Delete)

		auth.GET("/favorites", h.Favorite.List)
		auth.POST("/houses/:id/favorites", h.Favorite.Add)
		auth.DELETE("/houses/:id/favorites/:favoriteId", h.Favorite.Remove)

		auth.GET("/reservations", h.Reservation.Index)
		auth.POST("/houses/:id/reservations/input", h.Reservation.Input)
		auth.POST("/houses/:id/reservations/confirm", h.Reservation.Confirm)
	}

	// 管理者のみ
	admin := r.Group("/admin")
	admin.Use(jwtmw.AuthRequired(opts.JWTSecret), jwtmw.RequireRole(authentity.RoleAdmin))
	{
		admin.GET("/houses", h.AdminHouse.List)
		admin.POST("/houses", h.AdminHouse.Create)
		admin.GET("/houses/:id", h.AdminHouse.Show)
		admin.PUT("/houses/:id", h.AdminHouse.Update)
		admin.DELETE("/houses/:id", h.AdminHouse.Delete)

		admin.GET("/users", h.AdminUser.List)
		admin.GET("/users/:id", h.AdminUser.Show)
	}

	return r
}
