// Package dto はreservationフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	housedto "lodging_backend/internal/feature/house/transport/http/dto"
	"lodging_backend/internal/feature/reservation/domain"
	"lodging_backend/internal/feature/reservation/domain/entity"
	"lodging_backend/internal/feature/reservation/usecase"
)

// ReservationReq は予約フォームの入力です。日付は YYYY-MM-DD 形式です。
type ReservationReq struct {
	CheckinDate    string `json:"checkinDate" binding:"required,datetime=2006-01-02"`
	CheckoutDate   string `json:"checkoutDate" binding:"required,datetime=2006-01-02"`
	NumberOfPeople int    `json:"numberOfPeople" binding:"required,min=1"`
}

// ToInput は日付を解釈してユースケースの入力に変換します。
func (r ReservationReq) ToInput() (usecase.ReservationInput, error) {
	ci, err := domain.ParseDate(r.CheckinDate)
	if err != nil {
		return usecase.ReservationInput{}, err
	}
	co, err := domain.ParseDate(r.CheckoutDate)
	if err != nil {
		return usecase.ReservationInput{}, err
	}
	return usecase.ReservationInput{CheckinDate: ci, CheckoutDate: co, NumberOfPeople: r.NumberOfPeople}, nil
}

// QuoteRes は予約内容の確認結果です。
type QuoteRes struct {
	House          housedto.HouseRes `json:"house"`
	CheckinDate    string            `json:"checkinDate"`
	CheckoutDate   string            `json:"checkoutDate"`
	NumberOfPeople int               `json:"numberOfPeople"`
	Nights         int               `json:"nights"`
	Amount         int               `json:"amount"`
}

func NewQuoteRes(q usecase.Quote) QuoteRes {
	return QuoteRes{
		House:          housedto.NewHouseRes(q.House),
		CheckinDate:    domain.FormatDate(q.Draft.CheckinDate),
		CheckoutDate:   domain.FormatDate(q.Draft.CheckoutDate),
		NumberOfPeople: q.Draft.NumberOfPeople,
		Nights:         q.Nights,
		Amount:         q.Draft.Amount,
	}
}

// CheckoutRes は決済セッションIDを含む確認結果です。クライアントはこのIDで決済画面へ遷移します。
type CheckoutRes struct {
	QuoteRes
	SessionID string `json:"sessionId"`
}

func NewCheckoutRes(co usecase.Checkout) CheckoutRes {
	return CheckoutRes{QuoteRes: NewQuoteRes(co.Quote), SessionID: co.SessionID}
}

// ReservationRes は予約一覧の1件です。
type ReservationRes struct {
	ID             uint               `json:"id"`
	House          *housedto.HouseRes `json:"house,omitempty"`
	CheckinDate    string             `json:"checkinDate"`
	CheckoutDate   string             `json:"checkoutDate"`
	NumberOfPeople int                `json:"numberOfPeople"`
	Amount         int                `json:"amount"`
	CreatedAt      time.Time          `json:"createdAt"`
}

func NewReservationRes(r entity.Reservation) ReservationRes {
	res := ReservationRes{
		ID:             r.ID,
		CheckinDate:    domain.FormatDate(r.CheckinDate),
		CheckoutDate:   domain.FormatDate(r.CheckoutDate),
		NumberOfPeople: r.NumberOfPeople,
		Amount:         r.Amount,
		CreatedAt:      r.CreatedAt,
	}
	if r.House != nil {
		h := housedto.NewHouseRes(*r.House)
		res.House = &h
	}
	return res
}
