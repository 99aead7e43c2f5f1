package db

import (
	"fmt"

	"gorm.io/gorm"

	authentity "lodging_backend/internal/feature/auth/domain/entity"
	favoriteentity "lodging_backend/internal/feature/favorite/domain/entity"
	houseentity "lodging_backend/internal/feature/house/domain/entity"
	reservationentity "lodging_backend/internal/feature/reservation/domain/entity"
	reviewentity "lodging_backend/internal/feature/review/domain/entity"
)

// Models は自動マイグレーション対象のエンティティを依存順に返します。
func Models() []any {
	return []any{
		&authentity.Role{},
		&authentity.User{},
		&authentity.VerificationToken{},
		&houseentity.House{},
		&reviewentity.Review{},
		&favoriteentity.Favorite{},
		&reservationentity.Reservation{},
	}
}

// Migrate はテーブルを作成・更新し、固定のロールを投入します。何度実行しても結果は同じです。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	for _, name := range authentity.RoleNames() {
		role := authentity.Role{Name: name}
		if err := db.Where(authentity.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}
	return nil
}
