package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lodging_backend/internal/feature/auth/domain/entity"
	"lodging_backend/internal/feature/auth/usecase"
	platformdb "lodging_backend/internal/platform/db"
)

type roleMySQL struct {
	db *gorm.DB
}

var _ usecase.RoleRepository = (*roleMySQL)(nil)

// NewRoleMySQL はロールリポジトリを生成します。
func NewRoleMySQL(db *gorm.DB) *roleMySQL {
	return &roleMySQL{db: db}
}

// FindByName はロール名で取得します。未投入の場合は usecase.ErrRoleNotFound です。
func (r *roleMySQL) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	if err := platformdb.Conn(ctx, r.db).Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}
