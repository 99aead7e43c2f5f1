// Package handler はreservationフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lodging_backend/internal/feature/reservation/domain/entity"
	"lodging_backend/internal/feature/reservation/transport/http/dto"
	"lodging_backend/internal/feature/reservation/usecase"
	jwtmw "lodging_backend/internal/platform/jwt"
	"lodging_backend/internal/shared/pagination"
	"lodging_backend/internal/shared/params"
	"lodging_backend/internal/shared/validation"
)

// ReservationUsecase は予約のユースケースを定義します。
type ReservationUsecase interface {
	ListByUser(ctx context.Context, userID uint, p pagination.Pageable) (pagination.Page[entity.Reservation], error)
	Check(ctx context.Context, houseID, userID uint, in usecase.ReservationInput) (*usecase.Quote, error)
	Confirm(ctx context.Context, houseID, userID uint, in usecase.ReservationInput) (*usecase.Checkout, error)
}

type ReservationHandler struct {
	reservations ReservationUsecase
}

func NewReservationHandler(reservations ReservationUsecase) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// Index は GET /reservations を処理します。
func (h *ReservationHandler) Index(c *gin.Context) {
	userID, _ := jwtmw.UserIDFrom(c)
	page, err := h.reservations.ListByUser(c.Request.Context(), userID, pagination.FromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, dto.NewReservationRes))
}

// Input は POST /houses/:id/reservations/input を処理し、日付・人数の検証と金額計算の結果を返します。
func (h *ReservationHandler) Input(c *gin.Context) {
	houseID, userID, in, ok := bindInput(c)
	if !ok {
		return
	}
	q, err := h.reservations.Check(c.Request.Context(), houseID, userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteRes(*q))
}

// Confirm は POST /houses/:id/reservations/confirm を処理し、決済セッションを作成します。
func (h *ReservationHandler) Confirm(c *gin.Context) {
	houseID, userID, in, ok := bindInput(c)
	if !ok {
		return
	}
	co, err := h.reservations.Confirm(c.Request.Context(), houseID, userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCheckoutRes(*co))
}

func bindInput(c *gin.Context) (houseID, userID uint, in usecase.ReservationInput, ok bool) {
	houseID, ok = params.ID(c, "id")
	if !ok {
		return 0, 0, in, false
	}
	userID, _ = jwtmw.UserIDFrom(c)

	var req dto.ReservationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.Respond(c, err)
		return 0, 0, in, false
	}
	in, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return 0, 0, in, false
	}
	return houseID, userID, in, true
}

func respondError(c *gin.Context, err error) {
	var fe validation.FieldErrors
	switch {
	case errors.As(err, &fe):
		validation.RespondFields(c, fe)
	case errors.Is(err, usecase.ErrHouseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "house not found"})
	case errors.Is(err, usecase.ErrCheckoutUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment service unavailable"})
	default:
		slog.Error("reservation request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
