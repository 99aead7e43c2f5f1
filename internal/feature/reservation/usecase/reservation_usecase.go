package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	houseentity "lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/feature/reservation/domain"
	"lodging_backend/internal/feature/reservation/domain/entity"
	"lodging_backend/internal/platform/metrics"
	"lodging_backend/internal/shared/pagination"
	"lodging_backend/internal/shared/validation"
)

// ReservationInput は予約フォームの入力値です。
type ReservationInput struct {
	CheckinDate    time.Time
	CheckoutDate   time.Time
	NumberOfPeople int
}

// Quote は入力内容を確認した結果です。Draft.Amount は民宿の現在の料金で計算した金額です。
type Quote struct {
	House  houseentity.House
	Draft  domain.Draft
	Nights int
}

// Checkout は作成した決済セッションと、その元になった見積もりです。
type Checkout struct {
	Quote
	SessionID string
}

type reservationUsecase struct {
	reservations ReservationRepository
	houses       HouseReader
	checkout     CheckoutGateway
	metrics      Metrics
	baseURL      string
}

// NewReservationUsecase はreservationUsecaseの新しいインスタンスを生成します。
// baseURL は決済完了・キャンセル時の戻り先URLの生成に使います（末尾のスラッシュなし）。
func NewReservationUsecase(
	reservations ReservationRepository,
	houses HouseReader,
	checkout CheckoutGateway,
	m Metrics,
	baseURL string,
) *reservationUsecase {
	if m == nil {
		m = metrics.Noop{}
	}
	return &reservationUsecase{
		reservations: reservations,
		houses:       houses,
		checkout:     checkout,
		metrics:      m,
		baseURL:      baseURL,
	}
}

// ListByUser はユーザーの予約一覧を返します。
func (u *reservationUsecase) ListByUser(ctx context.Context, userID uint, p pagination.Pageable) (pagination.Page[entity.Reservation], error) {
	p = p.Normalize()
	rs, total, err := u.reservations.ListByUser(ctx, userID, p)
	if err != nil {
		return pagination.Page[entity.Reservation]{}, err
	}
	return pagination.NewPage(rs, p, total), nil
}

// Check は宿泊期間と人数を検証し、金額を計算します。
// 入力に問題がある場合は validation.FieldErrors を返します。
func (u *reservationUsecase) Check(ctx context.Context, houseID, userID uint, in ReservationInput) (*Quote, error) {
	h, err := u.houses.FindByID(ctx, houseID)
	if err != nil {
		return nil, err
	}

	fe := validation.FieldErrors{}
	if err := domain.ValidateStayPeriod(in.CheckinDate, in.CheckoutDate); err != nil {
		fe.Add("checkoutDate", MsgStayPeriod)
	}
	if !domain.IsWithinCapacity(in.NumberOfPeople, h.Capacity) {
		fe.Add("numberOfPeople", MsgOverCapacity)
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	return &Quote{
		House:  *h,
		Nights: domain.Nights(in.CheckinDate, in.CheckoutDate),
		Draft: domain.Draft{
			HouseID:        h.ID,
			UserID:         userID,
			CheckinDate:    in.CheckinDate,
			CheckoutDate:   in.CheckoutDate,
			NumberOfPeople: in.NumberOfPeople,
			Amount:         domain.CalculateAmount(in.CheckinDate, in.CheckoutDate, h.Price),
		},
	}, nil
}

// Confirm は入力内容を再検証し、決済セッションを作成します。
// 決済プロバイダーとの通信に失敗した場合は ErrCheckoutUnavailable を返します。
func (u *reservationUsecase) Confirm(ctx context.Context, houseID, userID uint, in ReservationInput) (*Checkout, error) {
	q, err := u.Check(ctx, houseID, userID, in)
	if err != nil {
		return nil, err
	}

	sessionID, err := u.checkout.CreateSession(ctx, domain.CheckoutRequest{
		HouseName:  q.House.Name,
		Draft:      q.Draft,
		SuccessURL: u.baseURL + "/reservations?reserved",
		CancelURL:  fmt.Sprintf("%s/houses/%d", u.baseURL, q.House.ID),
	})
	if err == nil && sessionID == "" {
		err = errors.New("empty session id")
	}
	if err != nil {
		u.metrics.RecordCheckoutSession(metrics.ResultFailure)
		slog.Error("failed to create checkout session", "house_id", houseID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCheckoutUnavailable, err)
	}

	u.metrics.RecordCheckoutSession(metrics.ResultSuccess)
	slog.Info("checkout session created", "session_id", sessionID, "house_id", houseID, "user_id", userID, "amount", q.Draft.Amount)
	return &Checkout{Quote: *q, SessionID: sessionID}, nil
}

// CreateFromDraft は決済完了した予約内容から予約を作成します。
// 金額は支払われた額をそのまま保存し、現在の料金と異なる場合は警告ログだけを出します。
// 宿泊期間・人数が不正な場合は domain のエラーを返します。
func (u *reservationUsecase) CreateFromDraft(ctx context.Context, d domain.Draft, paymentIntentID string) (*entity.Reservation, error) {
	h, err := u.houses.FindByID(ctx, d.HouseID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateStayPeriod(d.CheckinDate, d.CheckoutDate); err != nil {
		return nil, err
	}
	if !domain.IsWithinCapacity(d.NumberOfPeople, h.Capacity) {
		return nil, domain.ErrOverCapacity
	}
	if expected := domain.CalculateAmount(d.CheckinDate, d.CheckoutDate, h.Price); expected != d.Amount {
		slog.Warn("paid amount differs from current price",
			"house_id", h.ID, "payment_intent_id", paymentIntentID, "paid", d.Amount, "expected", expected)
	}

	r := &entity.Reservation{
		HouseID:         d.HouseID,
		UserID:          d.UserID,
		CheckinDate:     d.CheckinDate,
		CheckoutDate:    d.CheckoutDate,
		NumberOfPeople:  d.NumberOfPeople,
		Amount:          d.Amount,
		PaymentIntentID: paymentIntentID,
	}
	if err := u.reservations.Create(ctx, r); err != nil {
		return nil, err
	}

	u.metrics.RecordReservationCreated()
	slog.Info("reservation created", "reservation_id", r.ID, "house_id", r.HouseID, "user_id", r.UserID, "amount", r.Amount)
	return r, nil
}
