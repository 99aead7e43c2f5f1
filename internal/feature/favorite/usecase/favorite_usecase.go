package usecase

import (
	"context"
	"log/slog"

	"lodging_backend/internal/feature/favorite/domain/entity"
	"lodging_backend/internal/shared/pagination"
)

type favoriteUsecase struct {
	favorites FavoriteRepository
	houses    HouseReader
}

// NewFavoriteUsecase はfavoriteUsecaseの新しいインスタンスを生成します。
func NewFavoriteUsecase(favorites FavoriteRepository, houses HouseReader) *favoriteUsecase {
	return &favoriteUsecase{favorites: favorites, houses: houses}
}

// ListByUser はユーザーのお気に入り一覧を返します。
func (u *favoriteUsecase) ListByUser(ctx context.Context, userID uint, p pagination.Pageable) (pagination.Page[entity.Favorite], error) {
	p = p.Normalize()
	favs, total, err := u.favorites.ListByUser(ctx, userID, p)
	if err != nil {
		return pagination.Page[entity.Favorite]{}, err
	}
	return pagination.NewPage(favs, p, total), nil
}

// Find はユーザーが民宿をお気に入り登録していればそのお気に入りを返します。未登録は ErrFavoriteNotFound です。
func (u *favoriteUsecase) Find(ctx context.Context, houseID, userID uint) (*entity.Favorite, error) {
	return u.favorites.FindByHouseAndUser(ctx, houseID, userID)
}

// Add は民宿をお気に入りに追加します。
func (u *favoriteUsecase) Add(ctx context.Context, houseID, userID uint) (*entity.Favorite, error) {
	if _, err := u.houses.FindByID(ctx, houseID); err != nil {
		return nil, err
	}
	f := &entity.Favorite{HouseID: houseID, UserID: userID}
	if err := u.favorites.Create(ctx, f); err != nil {
		return nil, err
	}
	slog.Info("favorite added", "favorite_id", f.ID, "house_id", houseID, "user_id", userID)
	return f, nil
}

// Remove は本人のお気に入りを解除します。
func (u *favoriteUsecase) Remove(ctx context.Context, houseID, favoriteID, userID uint) error {
	f, err := u.favorites.FindByID(ctx, favoriteID)
	if err != nil {
		return err
	}
	if f.HouseID != houseID {
		return ErrFavoriteNotFound
	}
	if f.UserID != userID {
		return ErrForbidden
	}
	if err := u.favorites.Delete(ctx, favoriteID); err != nil {
		return err
	}
	slog.Info("favorite removed", "favorite_id", favoriteID, "user_id", userID)
	return nil
}
