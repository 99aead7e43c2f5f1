// Package handler はfavoriteフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lodging_backend/internal/feature/favorite/domain/entity"
	"lodging_backend/internal/feature/favorite/transport/http/dto"
	"lodging_backend/internal/feature/favorite/usecase"
	jwtmw "lodging_backend/internal/platform/jwt"
	"lodging_backend/internal/shared/pagination"
	"lodging_backend/internal/shared/params"
)

// Response messages.
const (
	MsgFavoriteAdded   = "お気に入りに追加しました。"
	MsgFavoriteRemoved = "お気に入りを解除しました。"
)

// FavoriteUsecase はお気に入りのユースケースを定義します。
type FavoriteUsecase interface {
	ListByUser(ctx context.Context, userID uint, p pagination.Pageable) (pagination.Page[entity.Favorite], error)
	Add(ctx context.Context, houseID, userID uint) (*entity.Favorite, error)
	Remove(ctx context.Context, houseID, favoriteID, userID uint) error
}

type FavoriteHandler struct {
	favorites FavoriteUsecase
}

func NewFavoriteHandler(favorites FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List は GET /favorites を処理します。
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, _ := jwtmw.UserIDFrom(c)
	page, err := h.favorites.ListByUser(c.Request.Context(), userID, pagination.FromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, dto.NewFavoriteRes))
}

// Add は POST /houses/:id/favorites を処理します。
func (h *FavoriteHandler) Add(c *gin.Context) {
	houseID, ok := params.ID(c, "id")
	if !ok {
		return
	}
	userID, _ := jwtmw.UserIDFrom(c)

	f, err := h.favorites.Add(c.Request.Context(), houseID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": MsgFavoriteAdded, "favorite": dto.NewFavoriteRes(*f)})
}

// Remove は DELETE /houses/:id/favorites/:favoriteId を処理します。
func (h *FavoriteHandler) Remove(c *gin.Context) {
	houseID, ok := params.ID(c, "id")
	if !ok {
		return
	}
	favoriteID, ok := params.ID(c, "favoriteId")
	if !ok {
		return
	}
	userID, _ := jwtmw.UserIDFrom(c)

	if err := h.favorites.Remove(c.Request.Context(), houseID, favoriteID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgFavoriteRemoved})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrHouseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "house not found"})
	case errors.Is(err, usecase.ErrFavoriteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
	case errors.Is(err, usecase.ErrAlreadyFavorite):
		c.JSON(http.StatusConflict, gin.H{"error": "already in favorites"})
	case errors.Is(err, usecase.ErrForbidden):
		slog.Warn("favorite access denied", "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		slog.Error("favorite request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
