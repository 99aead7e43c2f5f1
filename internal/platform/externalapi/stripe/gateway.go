package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"lodging_backend/internal/feature/reservation/domain"
	"lodging_backend/internal/feature/reservation/usecase"
)

// Gateway は決済セッションの作成・取得とWebhookの署名検証を行う CheckoutGateway 実装です。
type Gateway struct {
	cfg      Config
	sessions *session.Client
}

// GatewayがCheckoutGatewayを実装していることをコンパイル時に検証します。
var _ usecase.CheckoutGateway = (*Gateway)(nil)

// NewGateway は指定された設定とHTTPクライアントでGatewayを生成します。
// SDKの自動リトライは無効にし、タイムアウトは渡されたHTTPクライアントに従います。
func NewGateway(cfg Config, client *http.Client) *Gateway {
	if cfg.Currency == "" {
		cfg.Currency = "jpy"
	}
	bc := &stripego.BackendConfig{
		HTTPClient:        client,
		MaxNetworkRetries: stripego.Int64(0),
		LeveledLogger:     slogLogger{},
	}
	if cfg.BaseURL != "" {
		bc.URL = stripego.String(cfg.BaseURL)
	}
	backend := stripego.GetBackendWithConfig(stripego.APIBackend, bc)

	return &Gateway{
		cfg:      cfg,
		sessions: &session.Client{B: backend, Key: cfg.SecretKey},
	}
}

// CreateSession は1明細（宿泊料金×1）の決済セッションを作成し、セッションIDを返します。
// 予約内容は支払い（PaymentIntent）のメタデータとして渡し、決済完了時にWebhookで受け取ります。
func (g *Gateway) CreateSession(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	params := &stripego.CheckoutSessionParams{
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
		Mode:               stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL:         stripego.String(req.SuccessURL),
		CancelURL:          stripego.String(req.CancelURL),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency: stripego.String(g.cfg.Currency),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripego.String(req.HouseName),
					},
					UnitAmount: stripego.Int64(int64(req.Draft.Amount)),
				},
				Quantity: stripego.Int64(1),
			},
		},
		PaymentIntentData: &stripego.CheckoutSessionPaymentIntentDataParams{
			Metadata: req.Draft.Metadata(),
		},
	}
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if s.ID == "" {
		return "", errors.New("create checkout session: empty session id")
	}
	return s.ID, nil
}

// RetrieveSession は決済セッションを支払い情報込みで取得し直します。
// Webhookのペイロードは信用せず、メタデータは必ずこちらから読みます。
func (g *Gateway) RetrieveSession(ctx context.Context, sessionID string) (*domain.CompletedSession, error) {
	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	s, err := g.sessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session %s: %w", sessionID, err)
	}
	if s.PaymentIntent == nil || s.PaymentIntent.ID == "" {
		return nil, fmt.Errorf("retrieve checkout session %s: no payment intent", sessionID)
	}
	return &domain.CompletedSession{
		SessionID:       s.ID,
		PaymentIntentID: s.PaymentIntent.ID,
		Metadata:        s.PaymentIntent.Metadata,
	}, nil
}

// ParseEvent はWebhookの署名を検証してイベントを取り出します。
// 署名が不正な場合は domain.ErrInvalidSignature を返します。
func (g *Gateway) ParseEvent(payload []byte, signature string) (*domain.PaymentEvent, error) {
	if g.cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("%w: webhook secret is not configured", domain.ErrInvalidSignature)
	}
	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSignature, err)
	}

	out := &domain.PaymentEvent{ID: ev.ID, Type: string(ev.Type)}
	if out.IsCheckoutCompleted() && ev.Data != nil {
		var s stripego.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("decode checkout session event %s: %w", ev.ID, err)
		}
		out.SessionID = s.ID
	}
	return out, nil
}

// slogLogger はSDKのログをslogに流します。
type slogLogger struct{}

func (slogLogger) Debugf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}
func (slogLogger) Infof(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), "component", "stripe")
}
func (slogLogger) Warnf(format string, v ...any) {
	slog.Warn(fmt.Sprintf(format, v...), "component", "stripe")
}
func (slogLogger) Errorf(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...), "component", "stripe")
}
