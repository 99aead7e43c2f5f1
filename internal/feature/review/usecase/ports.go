package usecase

import (
	"context"

	houseentity "lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/feature/review/domain/entity"
	"lodging_backend/internal/shared/pagination"
)

// ReviewRepository はレビューの永続化層を抽象化します。
type ReviewRepository interface {
	// Create は同じユーザーが同じ民宿にレビュー済みの場合 ErrAlreadyReviewed を返します。
	Create(ctx context.Context, r *entity.Review) error
	// Update はスコアとコメントだけを更新します。
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id uint) error

	// FindByID は存在しない場合 ErrReviewNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.Review, error)
	// FindByHouseAndUser は存在しない場合 ErrReviewNotFound を返します。
	FindByHouseAndUser(ctx context.Context, houseID, userID uint) (*entity.Review, error)

	// ListByHouse は投稿者付きで新しい順に返します。
	ListByHouse(ctx context.Context, houseID uint, p pagination.Pageable) ([]entity.Review, int64, error)
	// LatestByHouse は投稿者付きで新しい順に最大 limit 件を返します。
	LatestByHouse(ctx context.Context, houseID uint, limit int) ([]entity.Review, error)
	CountByHouse(ctx context.Context, houseID uint) (int64, error)
}

// HouseReader は民宿の存在確認に使います。存在しない場合は ErrHouseNotFound を返します。
type HouseReader interface {
	FindByID(ctx context.Context, id uint) (*houseentity.House, error)
}
