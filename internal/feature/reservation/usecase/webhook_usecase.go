package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lodging_backend/internal/feature/reservation/domain"
	"lodging_backend/internal/platform/metrics"
)

// Webhook event outcomes recorded in metrics.
const (
	OutcomeProcessed = "processed"
	OutcomeIgnored   = "ignored"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

type webhookUsecase struct {
	checkout CheckoutGateway
	recorder ReservationRecorder
	guard    EventGuard
	metrics  Metrics
}

// NewWebhookUsecase はwebhookUsecaseの新しいインスタンスを生成します。guard が nil の場合は重複排除を予約の一意制約だけに任せます。
func NewWebhookUsecase(checkout CheckoutGateway, recorder ReservationRecorder, guard EventGuard, m Metrics) *webhookUsecase {
	if m == nil {
		m = metrics.Noop{}
	}
	return &webhookUsecase{checkout: checkout, recorder: recorder, guard: guard, metrics: m}
}

// HandleEvent は署名を検証し、決済完了イベントであれば予約を作成します。
//
// 署名が不正な場合は domain.ErrInvalidSignature を返します。
// それ以外でエラーを返すのは再送で回復しうる失敗（決済プロバイダーやDBの一時的な障害）だけです。
// 再送しても結果が変わらないイベント（メタデータ不正、定員超過など）はログを残して受理します。
func (u *webhookUsecase) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	ev, err := u.checkout.ParseEvent(payload, signature)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			u.metrics.RecordWebhookEvent("unknown", OutcomeRejected)
		}
		return err
	}

	if !ev.IsCheckoutCompleted() {
		u.metrics.RecordWebhookEvent(ev.Type, OutcomeIgnored)
		return nil
	}

	if !u.claim(ctx, ev.ID) {
		slog.Info("webhook event already handled", "event_id", ev.ID)
		u.metrics.RecordWebhookEvent(ev.Type, OutcomeDuplicate)
		return nil
	}

	outcome, err := u.complete(ctx, ev)
	u.metrics.RecordWebhookEvent(ev.Type, outcome)
	if err != nil {
		u.release(ctx, ev.ID)
		return err
	}
	return nil
}

func (u *webhookUsecase) complete(ctx context.Context, ev *domain.PaymentEvent) (string, error) {
	s, err := u.checkout.RetrieveSession(ctx, ev.SessionID)
	if err != nil {
		slog.Error("failed to retrieve checkout session", "event_id", ev.ID, "session_id", ev.SessionID, "error", err)
		return OutcomeFailed, err
	}

	d, err := domain.DraftFromMetadata(s.Metadata)
	if err != nil {
		slog.Error("checkout session has invalid metadata", "event_id", ev.ID, "session_id", s.SessionID, "error", err)
		return OutcomeRejected, nil
	}

	_, err = u.recorder.CreateFromDraft(ctx, d, s.PaymentIntentID)
	switch {
	case err == nil:
		return OutcomeProcessed, nil
	case errors.Is(err, ErrReservationAlreadyExists):
		slog.Info("reservation already stored for payment", "event_id", ev.ID, "payment_intent_id", s.PaymentIntentID)
		return OutcomeDuplicate, nil
	case errors.Is(err, ErrHouseNotFound),
		errors.Is(err, domain.ErrInvalidStayPeriod),
		errors.Is(err, domain.ErrOverCapacity):
		slog.Error("paid reservation could not be stored", "event_id", ev.ID, "payment_intent_id", s.PaymentIntentID, "error", err)
		return OutcomeRejected, nil
	default:
		return OutcomeFailed, fmt.Errorf("store reservation for event %s: %w", ev.ID, err)
	}
}

// claim はガードが使えない場合でも処理を続行します。その場合の重複は予約の一意制約で防ぎます。
func (u *webhookUsecase) claim(ctx context.Context, eventID string) bool {
	if u.guard == nil {
		return true
	}
	ok, err := u.guard.Claim(ctx, eventID)
	if err != nil {
		slog.Warn("webhook event guard unavailable", "event_id", eventID, "error", err)
		return true
	}
	return ok
}

func (u *webhookUsecase) release(ctx context.Context, eventID string) {
	if u.guard == nil {
		return
	}
	if err := u.guard.Release(ctx, eventID); err != nil {
		slog.Warn("failed to release webhook event", "event_id", eventID, "error", err)
	}
}
