// Package adapters はfavoriteフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lodging_backend/internal/feature/favorite/domain/entity"
	"lodging_backend/internal/feature/favorite/usecase"
	platformdb "lodging_backend/internal/platform/db"
	"lodging_backend/internal/shared/pagination"
)

type favoriteMySQL struct {
	db *gorm.DB
}

var _ usecase.FavoriteRepository = (*favoriteMySQL)(nil)

// NewFavoriteMySQL は指定されたgorm.DB接続でfavoriteMySQLの新しいインスタンスを生成します。
func NewFavoriteMySQL(db *gorm.DB) *favoriteMySQL {
	return &favoriteMySQL{db: db}
}

// Create は (house_id, user_id) の一意制約違反を usecase.ErrAlreadyFavorite に変換します。
func (r *favoriteMySQL) Create(ctx context.Context, f *entity.Favorite) error {
	if err := platformdb.Conn(ctx, r.db).Omit("House", "User").Create(f).Error; err != nil {
		if platformdb.IsDuplicateKey(err) {
			return usecase.ErrAlreadyFavorite
		}
		return err
	}
	return nil
}

func (r *favoriteMySQL) Delete(ctx context.Context, id uint) error {
	res := platformdb.Conn(ctx, r.db).Delete(&entity.Favorite{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteMySQL) FindByID(ctx context.Context, id uint) (*entity.Favorite, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *favoriteMySQL) FindByHouseAndUser(ctx context.Context, houseID, userID uint) (*entity.Favorite, error) {
	return r.first(ctx, "house_id = ? AND user_id = ?", houseID, userID)
}

func (r *favoriteMySQL) ListByUser(ctx context.Context, userID uint, p pagination.Pageable) ([]entity.Favorite, int64, error) {
	q := platformdb.Conn(ctx, r.db).Model(&entity.Favorite{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var favs []entity.Favorite
	err := q.Preload("House").
		Order("created_at DESC").Order("id DESC").
		Offset(p.Offset()).Limit(p.Limit()).
		Find(&favs).Error
	if err != nil {
		return nil, 0, err
	}
	return favs, total, nil
}

func (r *favoriteMySQL) first(ctx context.Context, query string, args ...any) (*entity.Favorite, error) {
	var f entity.Favorite
	if err := platformdb.Conn(ctx, r.db).Where(query, args...).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrFavoriteNotFound
		}
		return nil, err
	}
	return &f, nil
}
