// Package dto はfavoriteフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"lodging_backend/internal/feature/favorite/domain/entity"
	housedto "lodging_backend/internal/feature/house/transport/http/dto"
)

// FavoriteRes はお気に入りのレスポンスです。一覧では民宿の情報を含みます。
type FavoriteRes struct {
	ID        uint               `json:"id"`
	HouseID   uint               `json:"houseId"`
	House     *housedto.HouseRes `json:"house,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

func NewFavoriteRes(f entity.Favorite) FavoriteRes {
	res := FavoriteRes{ID: f.ID, HouseID: f.HouseID, CreatedAt: f.CreatedAt}
	if f.House != nil {
		h := housedto.NewHouseRes(*f.House)
		res.House = &h
	}
	return res
}
