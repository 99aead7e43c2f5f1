package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lodging_backend/internal/feature/auth/domain/entity"
	"lodging_backend/internal/feature/auth/transport/http/dto"
	"lodging_backend/internal/feature/auth/usecase"
	jwtmw "lodging_backend/internal/platform/jwt"
	"lodging_backend/internal/shared/pagination"
	"lodging_backend/internal/shared/params"
	"lodging_backend/internal/shared/validation"
)

// MsgProfileUpdated is returned after a successful profile update.
const MsgProfileUpdated = "会員情報を編集しました。"

// UserUsecase は会員情報のユースケースを定義します。
type UserUsecase interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uint, in usecase.ProfileInput) (*entity.User, error)
	Search(ctx context.Context, keyword string, p pagination.Pageable) (pagination.Page[entity.User], error)
}

// UserHandler はログイン中ユーザー自身の会員情報を扱います。
type UserHandler struct {
	users UserUsecase
}

func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Me は GET /user を処理します。
func (h *UserHandler) Me(c *gin.Context) {
	id, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(*user))
}

// UpdateMe は PUT /user を処理します。
func (h *UserHandler) UpdateMe(c *gin.Context) {
	id, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req dto.ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.Respond(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), id, req.ToInput())
	if err != nil {
		var fe validation.FieldErrors
		if errors.As(err, &fe) {
			validation.RespondFields(c, fe)
			return
		}
		respondUserError(c, err)
		return
	}

	slog.Info("profile updated", "user_id", id)
	c.JSON(http.StatusOK, gin.H{"message": MsgProfileUpdated, "user": dto.NewUserRes(*user)})
}

// AdminUserHandler は管理者向けの会員一覧・詳細を扱います。
type AdminUserHandler struct {
	users UserUsecase
}

func NewAdminUserHandler(users UserUsecase) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

// List は GET /admin/users?keyword=&page=&size= を処理します。
func (h *AdminUserHandler) List(c *gin.Context) {
	page, err := h.users.Search(c.Request.Context(), c.Query("keyword"), pagination.FromQuery(c))
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, dto.NewUserRes))
}

// Show は GET /admin/users/:id を処理します。
func (h *AdminUserHandler) Show(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(*user))
}

func respondUserError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	slog.Error("user request failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
