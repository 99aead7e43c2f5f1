package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lodging_backend/internal/feature/auth/domain/entity"
	"lodging_backend/internal/feature/auth/usecase"
	platformdb "lodging_backend/internal/platform/db"
)

// verificationTokenMySQL はメール認証トークンのGORM実装です。
type verificationTokenMySQL struct {
	db *gorm.DB
}

var _ usecase.VerificationTokenRepository = (*verificationTokenMySQL)(nil)

// NewVerificationTokenMySQL は認証トークンリポジトリを生成します。
func NewVerificationTokenMySQL(db *gorm.DB) *verificationTokenMySQL {
	return &verificationTokenMySQL{db: db}
}

// Create はトークンを保存します。
func (r *verificationTokenMySQL) Create(ctx context.Context, t *entity.VerificationToken) error {
	return platformdb.Conn(ctx, r.db).Omit(clause.Associations).Create(t).Error
}

// FindByToken はトークン文字列で検索します。一致しない場合は usecase.ErrTokenNotFound を返します。
func (r *verificationTokenMySQL) FindByToken(ctx context.Context, token string) (*entity.VerificationToken, error) {
	var t entity.VerificationToken
	if err := platformdb.Conn(ctx, r.db).Where("token = ?", token).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Delete はトークンを削除します。
func (r *verificationTokenMySQL) Delete(ctx context.Context, id uint) error {
	return platformdb.Conn(ctx, r.db).Delete(&entity.VerificationToken{}, id).Error
}
