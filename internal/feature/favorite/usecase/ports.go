package usecase

import (
	"context"

	"lodging_backend/internal/feature/favorite/domain/entity"
	houseentity "lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/shared/pagination"
)

// FavoriteRepository はお気に入りの永続化層を抽象化します。
type FavoriteRepository interface {
	// Create は登録済みの場合 ErrAlreadyFavorite を返します。
	Create(ctx context.Context, f *entity.Favorite) error
	Delete(ctx context.Context, id uint) error
	// FindByID は存在しない場合 ErrFavoriteNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.Favorite, error)
	// FindByHouseAndUser は存在しない場合 ErrFavoriteNotFound を返します。
	FindByHouseAndUser(ctx context.Context, houseID, userID uint) (*entity.Favorite, error)
	// ListByUser は民宿付きで新しい順に返します。
	ListByUser(ctx context.Context, userID uint, p pagination.Pageable) ([]entity.Favorite, int64, error)
}

// HouseReader は民宿の存在確認に使います。
type HouseReader interface {
	FindByID(ctx context.Context, id uint) (*houseentity.House, error)
}
