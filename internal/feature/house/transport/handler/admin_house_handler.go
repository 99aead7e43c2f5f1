package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"lodging_backend/internal/feature/house/transport/http/dto"
	"lodging_backend/internal/feature/house/usecase"
	"lodging_backend/internal/shared/pagination"
	"lodging_backend/internal/shared/params"
	"lodging_backend/internal/shared/validation"
)

// Response messages.
const (
	MsgHouseCreated = "民宿を登録しました。"
	MsgHouseUpdated = "民宿情報を編集しました。"
	MsgHouseDeleted = "民宿を削除しました。"
)

// AdminHouseHandler は管理者向けの民宿管理を処理します。
type AdminHouseHandler struct {
	houses HouseUsecase
}

func NewAdminHouseHandler(houses HouseUsecase) *AdminHouseHandler {
	return &AdminHouseHandler{houses: houses}
}

// List は GET /admin/houses?keyword= を処理します。
func (h *AdminHouseHandler) List(c *gin.Context) {
	page, err := h.houses.AdminSearch(c.Request.Context(), c.Query("keyword"), pagination.FromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, dto.NewHouseRes))
}

// Show は GET /admin/houses/:id を処理します。
func (h *AdminHouseHandler) Show(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	house, err := h.houses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewHouseRes(*house))
}

// Create は POST /admin/houses（multipart/form-data）を処理します。
func (h *AdminHouseHandler) Create(c *gin.Context) {
	var req dto.HouseReq
	if err := c.ShouldBind(&req); err != nil {
		validation.Respond(c, err)
		return
	}
	image, closeImage, ok := formImage(c)
	if !ok {
		return
	}
	defer closeImage()

	house, err := h.houses.Create(c.Request.Context(), req.ToInput(), image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": MsgHouseCreated, "house": dto.NewHouseRes(*house)})
}

// Update は PUT /admin/houses/:id（multipart/form-data）を処理します。画像の指定は任意です。
func (h *AdminHouseHandler) Update(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	var req dto.HouseReq
	if err := c.ShouldBind(&req); err != nil {
		validation.Respond(c, err)
		return
	}
	image, closeImage, ok := formImage(c)
	if !ok {
		return
	}
	defer closeImage()

	house, err := h.houses.Update(c.Request.Context(), id, req.ToInput(), image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgHouseUpdated, "house": dto.NewHouseRes(*house)})
}

// Delete は DELETE /admin/houses/:id を処理します。予約のある民宿は409です。
func (h *AdminHouseHandler) Delete(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		return
	}
	if err := h.houses.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgHouseDeleted})
}

// formImage は image フィールドのファイルを開きます。未指定なら nil を返します。
func formImage(c *gin.Context) (*usecase.ImageUpload, func(), bool) {
	noop := func() {}
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image"})
		return nil, noop, false
	}

	var f multipart.File
	if f, err = fh.Open(); err != nil {
		slog.Error("failed to open uploaded image", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image"})
		return nil, noop, false
	}
	return &usecase.ImageUpload{Filename: fh.Filename, Body: f}, func() { _ = f.Close() }, true
}
