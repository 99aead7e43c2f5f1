// Package dto はhouseフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/feature/house/usecase"
)

// ImagePathPrefix は保存済み画像の配信パスです。
const ImagePathPrefix = "/storage/"

// HouseReq は管理画面の民宿登録・編集フォーム（multipart/form-data）です。
// 画像は image フィールドで別途受け取ります。
type HouseReq struct {
	Name        string `form:"name" binding:"required,max=50"`
	Description string `form:"description" binding:"required"`
	Price       int    `form:"price" binding:"required,min=1"`
	Capacity    int    `form:"capacity" binding:"required,min=1"`
	PostalCode  string `form:"postalCode" binding:"required,max=50"`
	Address     string `form:"address" binding:"required,max=255"`
	PhoneNumber string `form:"phoneNumber" binding:"required,max=50"`
}

func (r HouseReq) ToInput() usecase.HouseInput {
	return usecase.HouseInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		PostalCode:  r.PostalCode,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
	}
}

// SearchReq は民宿一覧の検索クエリです。
type SearchReq struct {
	Keyword string `form:"keyword"`
	Area    string `form:"area"`
	Price   *int   `form:"price" binding:"omitempty,min=0"`
	Order   string `form:"order" binding:"omitempty,oneof=createdAtDesc priceAsc"`
}

func (r SearchReq) ToCriteria() usecase.SearchCriteria {
	return usecase.SearchCriteria{Keyword: r.Keyword, Area: r.Area, MaxPrice: r.Price, Order: r.Order}
}

// HouseRes は民宿のレスポンスです。
type HouseRes struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	ImageName   string    `json:"imageName"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	Capacity    int       `json:"capacity"`
	PostalCode  string    `json:"postalCode"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewHouseRes はエンティティからレスポンスを生成します。
func NewHouseRes(h entity.House) HouseRes {
	res := HouseRes{
		ID:          h.ID,
		Name:        h.Name,
		ImageName:   h.ImageName,
		Description: h.Description,
		Price:       h.Price,
		Capacity:    h.Capacity,
		PostalCode:  h.PostalCode,
		Address:     h.Address,
		PhoneNumber: h.PhoneNumber,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
	if h.ImageName != "" {
		res.ImageURL = ImagePathPrefix + h.ImageName
	}
	return res
}

// NewHouseList はスライスをレスポンスに変換します。
func NewHouseList(hs []entity.House) []HouseRes {
	out := make([]HouseRes, 0, len(hs))
	for _, h := range hs {
		out = append(out, NewHouseRes(h))
	}
	return out
}
