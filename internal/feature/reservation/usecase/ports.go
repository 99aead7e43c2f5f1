package usecase

import (
	"context"

	houseentity "lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/feature/reservation/domain"
	"lodging_backend/internal/feature/reservation/domain/entity"
	"lodging_backend/internal/shared/pagination"
)

// ReservationRepository は予約の永続化層を抽象化します。
type ReservationRepository interface {
	// Create は同じ支払いIDの予約が既にある場合 ErrReservationAlreadyExists を返します。
	Create(ctx context.Context, r *entity.Reservation) error
	// ListByUser は民宿付きで新しい順に返します。
	ListByUser(ctx context.Context, userID uint, p pagination.Pageable) ([]entity.Reservation, int64, error)
}

// HouseReader は予約対象の民宿を取得します。存在しない場合は ErrHouseNotFound を返します。
type HouseReader interface {
	FindByID(ctx context.Context, id uint) (*houseentity.House, error)
}

// CheckoutGateway は外部決済プロバイダーとのやり取りを抽象化します。
type CheckoutGateway interface {
	// CreateSession は決済セッションを作成し、そのIDを返します。空のIDを成功として返すことはありません。
	CreateSession(ctx context.Context, req domain.CheckoutRequest) (string, error)
	// RetrieveSession は決済セッションを支払い情報込みで取得し直します。
	RetrieveSession(ctx context.Context, sessionID string) (*domain.CompletedSession, error)
	// ParseEvent は署名を検証してWebhookイベントを返します。署名不正は domain.ErrInvalidSignature です。
	ParseEvent(payload []byte, signature string) (*domain.PaymentEvent, error)
}

// EventGuard は同じWebhookイベントの重複処理を防ぎます。
type EventGuard interface {
	// Claim はイベントを処理中として記録します。既に記録済みなら false を返します。
	Claim(ctx context.Context, eventID string) (bool, error)
	// Release は処理に失敗したイベントの記録を取り消し、再送で処理できるようにします。
	Release(ctx context.Context, eventID string) error
}

// ReservationRecorder は決済済みの予約内容から予約を作成します。
type ReservationRecorder interface {
	CreateFromDraft(ctx context.Context, d domain.Draft, paymentIntentID string) (*entity.Reservation, error)
}

// Metrics は予約・決済まわりの計測を抽象化します。
type Metrics interface {
	RecordCheckoutSession(result string)
	RecordWebhookEvent(eventType, outcome string)
	RecordReservationCreated()
}
