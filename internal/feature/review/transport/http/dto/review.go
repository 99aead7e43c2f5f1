// Package dto はreviewフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"lodging_backend/internal/feature/review/domain/entity"
	"lodging_backend/internal/feature/review/usecase"
)

// ReviewReq はレビュー投稿・編集のリクエストボディです。
// 範囲と文字数はユースケースで検証し、フォームと同じメッセージを返します。
type ReviewReq struct {
	Score   int    `json:"score"`
	Content string `json:"content"`
}

func (r ReviewReq) ToInput() usecase.ReviewInput {
	return usecase.ReviewInput{Score: r.Score, Content: r.Content}
}

// ReviewRes はレビューのレスポンスです。投稿者は氏名だけを返します。
type ReviewRes struct {
	ID        uint      `json:"id"`
	HouseID   uint      `json:"houseId"`
	UserID    uint      `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Score     int       `json:"score"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewReviewRes はエンティティからレスポンスを生成します。
func NewReviewRes(r entity.Review) ReviewRes {
	res := ReviewRes{
		ID:        r.ID,
		HouseID:   r.HouseID,
		UserID:    r.UserID,
		Score:     r.Score,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.User != nil {
		res.UserName = r.User.Name
	}
	return res
}

// NewReviewList はスライスをレスポンスに変換します。
func NewReviewList(rs []entity.Review) []ReviewRes {
	out := make([]ReviewRes, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewReviewRes(r))
	}
	return out
}
