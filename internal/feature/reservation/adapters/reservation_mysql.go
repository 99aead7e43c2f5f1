// Package adapters はreservationフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"lodging_backend/internal/feature/reservation/domain/entity"
	"lodging_backend/internal/feature/reservation/usecase"
	platformdb "lodging_backend/internal/platform/db"
	"lodging_backend/internal/shared/pagination"
)

type reservationMySQL struct {
	db *gorm.DB
}

var _ usecase.ReservationRepository = (*reservationMySQL)(nil)

// NewReservationMySQL は指定されたgorm.DB接続でreservationMySQLの新しいインスタンスを生成します。
func NewReservationMySQL(db *gorm.DB) *reservationMySQL {
	return &reservationMySQL{db: db}
}

// Create は payment_intent_id の一意制約違反を usecase.ErrReservationAlreadyExists に変換します。
func (r *reservationMySQL) Create(ctx context.Context, res *entity.Reservation) error {
	if err := platformdb.Conn(ctx, r.db).Omit("House", "User").Create(res).Error; err != nil {
		if platformdb.IsDuplicateKey(err) {
			return usecase.ErrReservationAlreadyExists
		}
		return err
	}
	return nil
}

func (r *reservationMySQL) ListByUser(ctx context.Context, userID uint, p pagination.Pageable) ([]entity.Reservation, int64, error) {
	q := platformdb.Conn(ctx, r.db).Model(&entity.Reservation{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rs []entity.Reservation
	err := q.Preload("House").
		Order("created_at DESC").Order("id DESC").
		Offset(p.Offset()).Limit(p.Limit()).
		Find(&rs).Error
	if err != nil {
		return nil, 0, err
	}
	return rs, total, nil
}
