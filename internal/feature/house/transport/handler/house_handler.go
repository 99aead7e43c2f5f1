// Package handler はhouseフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	favoriteentity "lodging_backend/internal/feature/favorite/domain/entity"
	favoriteusecase "lodging_backend/internal/feature/favorite/usecase"
	"lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/feature/house/transport/http/dto"
	"lodging_backend/internal/feature/house/usecase"
	reviewentity "lodging_backend/internal/feature/review/domain/entity"
	reviewdto "lodging_backend/internal/feature/review/transport/http/dto"
	jwtmw "lodging_backend/internal/platform/jwt"
	"lodging_backend/internal/shared/pagination"
	"lodging_backend/internal/shared/params"
	"lodging_backend/internal/shared/validation"
)

// HouseUsecase は民宿のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type HouseUsecase interface {
	Newest(ctx context.Context) ([]entity.House, error)
	Search(ctx context.Context, c usecase.SearchCriteria, p pagination.Pageable) (pagination.Page[entity.House], error)
	AdminSearch(ctx context.Context, keyword string, p pagination.Pageable) (pagination.Page[entity.House], error)
	Get(ctx context.Context, id uint) (*entity.House, error)
	Create(ctx context.Context, in usecase.HouseInput, image *usecase.ImageUpload) (*entity.House, error)
	Update(ctx context.Context, id uint, in usecase.HouseInput, image *usecase.ImageUpload) (*entity.House, error)
	Delete(ctx context.Context, id uint) error
}

// ReviewReader は民宿詳細に表示するレビュー情報を提供します。
type ReviewReader interface {
	Latest(ctx context.Context, houseID uint) ([]reviewentity.Review, error)
	Count(ctx context.Context, houseID uint) (int64, error)
	HasUserReviewed(ctx context.Context, houseID, userID uint) (bool, error)
}

// FavoriteFinder はログイン中ユーザーのお気に入り状態を提供します。
type FavoriteFinder interface {
	Find(ctx context.Context, houseID, userID uint) (*favoriteentity.Favorite, error)
}

// HouseHandler は一般向けの民宿ページを処理します。
type HouseHandler struct {
	houses    HouseUsecase
	reviews   ReviewReader
	favorites FavoriteFinder
}

// NewHouseHandler はHouseHandlerの新しいインスタンスを生成します。
func NewHouseHandler(houses HouseUsecase, reviews ReviewReader, favorites FavoriteFinder) *HouseHandler {
	return &HouseHandler{houses: houses, reviews: reviews, favorites: favorites}
}

// Home は GET / を処理し、新着の民宿を返します。
func (h *HouseHandler) Home(c *gin.Context) {
	houses, err := h.houses.Newest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"newHouses": dto.NewHouseList(houses)})
}

// Index は GET /houses を処理します。
// keyword・area・price のうち最初に指定された条件だけで絞り込み、order=priceAsc で料金の安い順になります。
func (h *HouseHandler) Index(c *gin.Context) {
	var req dto.SearchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		validation.Respond(c, err)
		return
	}
	page, err := h.houses.Search(c.Request.Context(), req.ToCriteria(), pagination.FromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, dto.NewHouseRes))
}

// houseDetail は民宿詳細のレスポンスです。お気に入り・レビュー済みの状態はログイン時のみ設定されます。
type houseDetail struct {
	House       dto.HouseRes          `json:"house"`
	Reviews     []reviewdto.ReviewRes `json:"reviews"`
	ReviewCount int64                 `json:"reviewCount"`
	IsFavorite  bool                  `json:"isFavorite"`
	FavoriteID  *uint                 `json:"favoriteId,omitempty"`
	HasReviewed bool                  `json:"hasReviewed"`
}

// Show は GET /houses/:id を処理します。
func (h *HouseHandler) Show(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	house, err := h.houses.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	reviews, err := h.reviews.Latest(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	count, err := h.reviews.Count(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	detail := houseDetail{
		House:       dto.NewHouseRes(*house),
		Reviews:     reviewdto.NewReviewList(reviews),
		ReviewCount: count,
	}

	if userID, ok := jwtmw.UserIDFrom(c); ok {
		fav, err := h.favorites.Find(ctx, id, userID)
		switch {
		case err == nil:
			detail.IsFavorite = true
			detail.FavoriteID = &fav.ID
		case !errors.Is(err, favoriteusecase.ErrFavoriteNotFound):
			respondError(c, err)
			return
		}
		if detail.HasReviewed, err = h.reviews.HasUserReviewed(ctx, id, userID); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, detail)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrHouseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "house not found"})
	case errors.Is(err, usecase.ErrHouseInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "house has reservations"})
	default:
		slog.Error("house request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
