package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lodging_backend/internal/feature/auth/domain/entity"
	"lodging_backend/internal/shared/validation"
)

// dummyHash はユーザーが存在しない場合にも bcrypt 比較を行うためのダミーハッシュです（タイミング攻撃対策）。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// SignupInput は会員登録フォームの入力値です。
type SignupInput struct {
	Name                 string
	Furigana             string
	PostalCode           string
	Address              string
	PhoneNumber          string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Options は authUsecase の設定です。
type Options struct {
	BaseURL  string        // 認証リンクの生成に使う絶対URL
	TokenTTL time.Duration // 認証トークンの有効期間
}

// authUsecase は会員登録・メール認証・ログインを実装します。
type authUsecase struct {
	users   UserRepository
	roles   RoleRepository
	tokens  VerificationTokenRepository
	tx      Transactor
	jwt     JWTGenerator
	mailer  VerificationMailer
	metrics Metrics
	opts    Options

	now      func() time.Time
	newToken func() string
	cost     int
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(
	users UserRepository,
	roles RoleRepository,
	tokens VerificationTokenRepository,
	tx Transactor,
	jwt JWTGenerator,
	mailer VerificationMailer,
	metrics Metrics,
	opts Options,
) *authUsecase {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &authUsecase{
		users:    users,
		roles:    roles,
		tokens:   tokens,
		tx:       tx,
		jwt:      jwt,
		mailer:   mailer,
		metrics:  metrics,
		opts:     opts,
		now:      time.Now,
		newToken: uuid.NewString,
		cost:     bcrypt.DefaultCost,
	}
}

// Signup は無効状態のユーザーと認証トークンを作成し、認証リンクをメールで送ります。
// メールアドレスの重複とパスワード確認の不一致は validation.FieldErrors で返します。
// メール送信に失敗した場合は登録全体をロールバックし ErrVerificationMail を返します。
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	fe := validation.FieldErrors{}
	if in.Password != in.PasswordConfirmation {
		fe.Add("password", MsgPasswordMismatch)
	}
	registered, err := u.isEmailRegistered(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if registered {
		fe.Add("email", MsgEmailAlreadyRegistered)
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *entity.User
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		role, err := u.roles.FindByName(ctx, entity.RoleGeneral)
		if err != nil {
			return fmt.Errorf("find role %s: %w", entity.RoleGeneral, err)
		}

		user = &entity.User{
			Name:        in.Name,
			Furigana:    in.Furigana,
			PostalCode:  in.PostalCode,
			Address:     in.Address,
			PhoneNumber: in.PhoneNumber,
			Email:       in.Email,
			Password:    string(hashed),
			RoleID:      role.ID,
			Enabled:     false,
		}
		if err := u.users.Create(ctx, user); err != nil {
			if errors.Is(err, ErrEmailAlreadyExists) {
				// 事前確認と保存の間に同じメールアドレスで登録された場合
				return validation.FieldErrors{"email": MsgEmailAlreadyRegistered}
			}
			return err
		}

		token := &entity.VerificationToken{
			UserID:    user.ID,
			Token:     u.newToken(),
			ExpiresAt: u.now().Add(u.opts.TokenTTL),
		}
		if err := u.tokens.Create(ctx, token); err != nil {
			return fmt.Errorf("create verification token: %w", err)
		}

		if err := u.mailer.SendVerificationMail(ctx, user.Email, u.verificationLink(token.Token)); err != nil {
			return fmt.Errorf("%w: %w", ErrVerificationMail, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.RecordSignup()
	slog.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// Verify はトークンに対応するユーザーを有効化し、トークンを削除します（1回限り）。
// 不明なトークンは ErrTokenNotFound、期限切れは ErrTokenExpired を返し、いずれもユーザーの状態は変えません。
func (u *authUsecase) Verify(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		u.metrics.RecordVerification("invalid")
		return ErrTokenNotFound
	}

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		vt, err := u.tokens.FindByToken(ctx, token)
		if err != nil {
			return err
		}
		if vt.IsExpired(u.now()) {
			return ErrTokenExpired
		}
		if err := u.users.Enable(ctx, vt.UserID); err != nil {
			return fmt.Errorf("enable user %d: %w", vt.UserID, err)
		}
		return u.tokens.Delete(ctx, vt.ID)
	})

	switch {
	case err == nil:
		u.metrics.RecordVerification("")
	case errors.Is(err, ErrTokenNotFound):
		u.metrics.RecordVerification("invalid")
	case errors.Is(err, ErrTokenExpired):
		u.metrics.RecordVerification("expired")
	}
	return err
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// パスワードが正しくてもメール認証前のユーザーは ErrUserNotVerified になります。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}
	if !user.Enabled {
		return "", ErrUserNotVerified
	}

	token, err := u.jwt.GenerateToken(entity.NewPrincipal(user))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

func (u *authUsecase) isEmailRegistered(ctx context.Context, email string) (bool, error) {
	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (u *authUsecase) verificationLink(token string) string {
	return u.opts.BaseURL + "/signup/verify?token=" + url.QueryEscape(token)
}
