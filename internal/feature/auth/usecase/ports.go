package usecase

import (
	"context"

	"lodging_backend/internal/feature/auth/domain/entity"
	"lodging_backend/internal/shared/pagination"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを保存します。メールアドレスが重複する場合は ErrEmailAlreadyExists を返します。
	Create(ctx context.Context, user *entity.User) error

	// UpdateProfile はプロフィール項目（氏名・住所・電話番号・メールアドレス）を更新します。
	UpdateProfile(ctx context.Context, user *entity.User) error

	// Enable はユーザーを有効化します。
	Enable(ctx context.Context, id uint) error

	// FindByEmail はロール付きでユーザーを取得します。存在しない場合は ErrUserNotFound を返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID はロール付きでユーザーを取得します。存在しない場合は ErrUserNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Search は氏名またはフリガナの部分一致でユーザーを検索します。keyword が空なら全件です。
	Search(ctx context.Context, keyword string, p pagination.Pageable) ([]entity.User, int64, error)
}

// RoleRepository は固定ロールの参照です。
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Role, error)
}

// VerificationTokenRepository はメール認証トークンの永続化層です。
type VerificationTokenRepository interface {
	Create(ctx context.Context, token *entity.VerificationToken) error
	// FindByToken は存在しない場合 ErrTokenNotFound を返します。
	FindByToken(ctx context.Context, token string) (*entity.VerificationToken, error)
	Delete(ctx context.Context, id uint) error
}

// Transactor は複数のリポジトリ操作を1つのトランザクションで実行します。
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	GenerateToken(p entity.Principal) (string, error)
}

// VerificationMailer は認証リンクをメールで送信します。
type VerificationMailer interface {
	SendVerificationMail(ctx context.Context, to, link string) error
}

// Metrics は会員登録・メール認証の件数を記録します。
type Metrics interface {
	RecordSignup()
	RecordVerification(reason string)
}
