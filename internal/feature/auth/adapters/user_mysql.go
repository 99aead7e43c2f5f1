// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lodging_backend/internal/feature/auth/domain/entity"
	"lodging_backend/internal/feature/auth/usecase"
	platformdb "lodging_backend/internal/platform/db"
	"lodging_backend/internal/shared/pagination"
)

// userMySQL はUserRepositoryインターフェースのGORM実装です。
type userMySQL struct {
	db *gorm.DB
}

// userMySQLがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL は指定されたgorm.DB接続でuserMySQLの新しいインスタンスを生成します。
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// Create はユーザーをデータベースに追加します。ロールは既存のものを参照するだけで作成しません。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userMySQL) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if err := platformdb.Conn(ctx, r.db).Omit(clause.Associations).Create(u).Error; err != nil {
		if platformdb.IsDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// UpdateProfile はプロフィール項目だけを更新します。パスワード・ロール・有効状態は変更しません。
func (r *userMySQL) UpdateProfile(ctx context.Context, u *entity.User) error {
	res := platformdb.Conn(ctx, r.db).Model(&entity.User{}).Where("id = ?", u.ID).Updates(map[string]any{
		"name":         u.Name,
		"furigana":     u.Furigana,
		"postal_code":  u.PostalCode,
		"address":      u.Address,
		"phone_number": u.PhoneNumber,
		"email":        u.Email,
	})
	if res.Error != nil {
		if platformdb.IsDuplicateKey(res.Error) {
			return usecase.ErrEmailAlreadyExists
		}
		return res.Error
	}
	return nil
}

// Enable はユーザーを有効化します。存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userMySQL) Enable(ctx context.Context, id uint) error {
	db := platformdb.Conn(ctx, r.db)
	var u entity.User
	if err := db.Select("id").Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.ErrUserNotFound
		}
		return err
	}
	return db.Model(&entity.User{}).Where("id = ?", id).Update("enabled", true).Error
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userMySQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userMySQL) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

// Search は氏名またはフリガナの部分一致でユーザーをID順に検索します。
func (r *userMySQL) Search(ctx context.Context, keyword string, p pagination.Pageable) ([]entity.User, int64, error) {
	q := platformdb.Conn(ctx, r.db).Model(&entity.User{})
	if keyword != "" {
		like := "%" + keyword + "%"
		q = q.Where("name LIKE ? OR furigana LIKE ?", like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	if err := q.Preload("Role").Order("id ASC").Offset(p.Offset()).Limit(p.Limit()).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userMySQL) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := platformdb.Conn(ctx, r.db).Preload("Role").Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
