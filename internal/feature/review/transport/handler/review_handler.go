// Package handler はreviewフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lodging_backend/internal/feature/review/domain/entity"
	"lodging_backend/internal/feature/review/transport/http/dto"
	"lodging_backend/internal/feature/review/usecase"
	jwtmw "lodging_backend/internal/platform/jwt"
	"lodging_backend/internal/shared/pagination"
	"lodging_backend/internal/shared/params"
	"lodging_backend/internal/shared/validation"
)

// Response messages.
const (
	MsgReviewCreated = "レビューを投稿しました。"
	MsgReviewUpdated = "レビューを編集しました。"
	MsgReviewDeleted = "レビューを削除しました。"
)

// ReviewUsecase はレビューのユースケースを定義します。
type ReviewUsecase interface {
	ListByHouse(ctx context.Context, houseID uint, p pagination.Pageable) (pagination.Page[entity.Review], error)
	Create(ctx context.Context, houseID, userID uint, in usecase.ReviewInput) (*entity.Review, error)
	Update(ctx context.Context, houseID, reviewID, userID uint, in usecase.ReviewInput) (*entity.Review, error)
	Delete(ctx context.Context, houseID, reviewID, userID uint) error
}

// ReviewHandler は /houses/:id/reviews 配下のリクエストを処理します。
type ReviewHandler struct {
	reviews ReviewUsecase
}

func NewReviewHandler(reviews ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List は民宿のレビュー一覧を新しい順に返します。
func (h *ReviewHandler) List(c *gin.Context) {
	houseID, ok := params.ID(c, "id")
	if !ok {
		return
	}
	page, err := h.reviews.ListByHouse(c.Request.Context(), houseID, pagination.FromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, dto.NewReviewRes))
}

// Create はレビューを投稿します。同じ民宿へのレビューは1人1件までです。
func (h *ReviewHandler) Create(c *gin.Context) {
	houseID, ok := params.ID(c, "id")
	if !ok {
		return
	}
	userID, _ := jwtmw.UserIDFrom(c)

	var req dto.ReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.Respond(c, err)
		return
	}
	r, err := h.reviews.Create(c.Request.Context(), houseID, userID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": MsgReviewCreated, "review": dto.NewReviewRes(*r)})
}

// Update は投稿者本人のレビューを編集します。
func (h *ReviewHandler) Update(c *gin.Context) {
	houseID, ok := params.ID(c, "id")
	if !ok {
		return
	}
	reviewID, ok := params.ID(c, "reviewId")
	if !ok {
		return
	}
	userID, _ := jwtmw.UserIDFrom(c)

	var req dto.ReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.Respond(c, err)
		return
	}
	r, err := h.reviews.Update(c.Request.Context(), houseID, reviewID, userID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgReviewUpdated, "review": dto.NewReviewRes(*r)})
}

// Delete は投稿者本人のレビューを削除します。
func (h *ReviewHandler) Delete(c *gin.Context) {
	houseID, ok := params.ID(c, "id")
	if !ok {
		return
	}
	reviewID, ok := params.ID(c, "reviewId")
	if !ok {
		return
	}
	userID, _ := jwtmw.UserIDFrom(c)

	if err := h.reviews.Delete(c.Request.Context(), houseID, reviewID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgReviewDeleted})
}

func respondError(c *gin.Context, err error) {
	var fe validation.FieldErrors
	switch {
	case errors.As(err, &fe):
		validation.RespondFields(c, fe)
	case errors.Is(err, usecase.ErrHouseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "house not found"})
	case errors.Is(err, usecase.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
	case errors.Is(err, usecase.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": "already reviewed"})
	case errors.Is(err, usecase.ErrForbidden):
		slog.Warn("review access denied", "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		slog.Error("review request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
