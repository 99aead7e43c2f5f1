// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lodging_backend/internal/feature/auth/domain/entity"
	"lodging_backend/internal/feature/auth/transport/http/dto"
	"lodging_backend/internal/feature/auth/usecase"
	"lodging_backend/internal/shared/validation"
)

// Response messages.
const (
	MsgSignupMailSent = "ご入力いただいたメールアドレスに認証メールを送信しました。メールに記載されているリンクをクリックし、会員登録を完了してください。"
	MsgVerified       = "会員登録が完了しました。"
	MsgTokenInvalid   = "トークンが無効です。"
	MsgTokenExpired   = "トークンの有効期限が切れています。再度会員登録を行ってください。"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は無効状態のユーザーを登録し、認証メールを送信します。
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, error)
	// Verify は認証トークンを検証してユーザーを有効化します。
	Verify(ctx context.Context, token string) error
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup は会員登録APIエンドポイントを処理します。
// - バリデーションエラー・メールアドレス重複・パスワード不一致は422とフィールド別メッセージを返却
// - 認証メールの送信に失敗した場合は503を返却（登録はロールバック済み）
// - 成功時は201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		validation.Respond(c, err)
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req.ToInput())
	if err != nil {
		var fe validation.FieldErrors
		switch {
		case errors.As(err, &fe):
			slog.Warn("signup rejected", "fields", fe, "remote_addr", c.ClientIP())
			validation.RespondFields(c, fe)
		case errors.Is(err, usecase.ErrVerificationMail):
			slog.Error("verification mail failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to send verification mail"})
		default:
			slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"message": MsgSignupMailSent})
}

// Verify はメール認証リンク（GET /signup/verify?token=）を処理します。
// 不明なトークンと期限切れのトークンは400を返し、ユーザーの状態は変わりません。
func (h *AuthHandler) Verify(c *gin.Context) {
	err := h.auth.Verify(c.Request.Context(), c.Query("token"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": MsgVerified})
	case errors.Is(err, usecase.ErrTokenNotFound):
		slog.Warn("verification token not found", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgTokenInvalid})
	case errors.Is(err, usecase.ErrTokenExpired):
		slog.Warn("verification token expired", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgTokenExpired})
	default:
		slog.Error("verification failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は422を返却
// - メール認証前のユーザーは403を返却
// - その他の認証失敗時は401を返却（内部エラーの詳細は公開しない）
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		validation.Respond(c, err)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotVerified) {
			slog.Warn("login before verification", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusForbidden, gin.H{"error": "email not verified"})
			return
		}
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{Token: token})
}
