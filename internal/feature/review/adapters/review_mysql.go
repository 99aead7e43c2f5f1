// Package adapters はreviewフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lodging_backend/internal/feature/review/domain/entity"
	"lodging_backend/internal/feature/review/usecase"
	platformdb "lodging_backend/internal/platform/db"
	"lodging_backend/internal/shared/pagination"
)

type reviewMySQL struct {
	db *gorm.DB
}

var _ usecase.ReviewRepository = (*reviewMySQL)(nil)

// NewReviewMySQL は指定されたgorm.DB接続でreviewMySQLの新しいインスタンスを生成します。
func NewReviewMySQL(db *gorm.DB) *reviewMySQL {
	return &reviewMySQL{db: db}
}

// Create は (house_id, user_id) の一意制約違反を usecase.ErrAlreadyReviewed に変換します。
func (r *reviewMySQL) Create(ctx context.Context, rv *entity.Review) error {
	if err := platformdb.Conn(ctx, r.db).Omit("House", "User").Create(rv).Error; err != nil {
		if platformdb.IsDuplicateKey(err) {
			return usecase.ErrAlreadyReviewed
		}
		return err
	}
	return nil
}

func (r *reviewMySQL) Update(ctx context.Context, rv *entity.Review) error {
	return platformdb.Conn(ctx, r.db).Model(&entity.Review{}).Where("id = ?", rv.ID).Updates(map[string]any{
		"score":   rv.Score,
		"content": rv.Content,
	}).Error
}

func (r *reviewMySQL) Delete(ctx context.Context, id uint) error {
	res := platformdb.Conn(ctx, r.db).Delete(&entity.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrReviewNotFound
	}
	return nil
}

func (r *reviewMySQL) FindByID(ctx context.Context, id uint) (*entity.Review, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *reviewMySQL) FindByHouseAndUser(ctx context.Context, houseID, userID uint) (*entity.Review, error) {
	return r.first(ctx, "house_id = ? AND user_id = ?", houseID, userID)
}

func (r *reviewMySQL) ListByHouse(ctx context.Context, houseID uint, p pagination.Pageable) ([]entity.Review, int64, error) {
	q := platformdb.Conn(ctx, r.db).Model(&entity.Review{}).Where("house_id = ?", houseID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reviews []entity.Review
	err := q.Preload("User").
		Order("created_at DESC").Order("id DESC").
		Offset(p.Offset()).Limit(p.Limit()).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewMySQL) LatestByHouse(ctx context.Context, houseID uint, limit int) ([]entity.Review, error) {
	var reviews []entity.Review
	err := platformdb.Conn(ctx, r.db).
		Preload("User").
		Where("house_id = ?", houseID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewMySQL) CountByHouse(ctx context.Context, houseID uint) (int64, error) {
	var n int64
	err := platformdb.Conn(ctx, r.db).Model(&entity.Review{}).Where("house_id = ?", houseID).Count(&n).Error
	return n, err
}

func (r *reviewMySQL) first(ctx context.Context, query string, args ...any) (*entity.Review, error) {
	var rv entity.Review
	if err := platformdb.Conn(ctx, r.db).Where(query, args...).First(&rv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrReviewNotFound
		}
		return nil, err
	}
	return &rv, nil
}
