package domain

import "errors"

// EventCheckoutCompleted は決済完了を表すWebhookイベント種別です。
const EventCheckoutCompleted = "checkout.session.completed"

// ErrInvalidSignature はWebhookの署名検証に失敗したことを表します。
var ErrInvalidSignature = errors.New("invalid webhook signature")

// CheckoutRequest は決済セッション作成の入力です。
type CheckoutRequest struct {
	HouseName  string
	Draft      Draft
	SuccessURL string
	CancelURL  string
}

// PaymentEvent は署名検証済みのWebhookイベントです。
// SessionID は決済完了イベントの場合のみ設定されます。
type PaymentEvent struct {
	ID        string
	Type      string
	SessionID string
}

// IsCheckoutCompleted は決済完了イベントかどうかを返します。
func (e PaymentEvent) IsCheckoutCompleted() bool {
	return e.Type == EventCheckoutCompleted
}

// CompletedSession は決済プロバイダーから取得し直した決済セッションです。
type CompletedSession struct {
	SessionID       string
	PaymentIntentID string
	Metadata        map[string]string
}
