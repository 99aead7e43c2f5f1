package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lodging_backend/internal/feature/reservation/domain"
)

// SignatureHeader は決済プロバイダーが署名を載せるヘッダーです。
const SignatureHeader = "Stripe-Signature"

// maxWebhookBody はWebhookで受け付ける本文の上限です。
const maxWebhookBody = 64 << 10

// WebhookUsecase は決済Webhookの処理を定義します。
type WebhookUsecase interface {
	HandleEvent(ctx context.Context, payload []byte, signature string) error
}

type WebhookHandler struct {
	webhooks WebhookUsecase
}

func NewWebhookHandler(webhooks WebhookUsecase) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

// Handle は POST /stripe/webhook を処理します。
// 署名検証に失敗した場合は400、再送で回復しうる失敗は500を返し、それ以外は200で受理します。
func (h *WebhookHandler) Handle(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	err = h.webhooks.HandleEvent(c.Request.Context(), payload, c.GetHeader(SignatureHeader))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, domain.ErrInvalidSignature):
		slog.Warn("webhook signature verification failed", "remote_addr", c.ClientIP(), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
	default:
		slog.Error("webhook handling failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
