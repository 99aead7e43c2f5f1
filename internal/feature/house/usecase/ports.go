package usecase

import (
	"context"
	"io"

	"lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/shared/pagination"
)

// Sort orders accepted by the public house search.
const (
	OrderCreatedAtDesc = "createdAtDesc"
	OrderPriceAsc      = "priceAsc"
)

// SearchCriteria は民宿一覧の検索条件です。
// Keyword・Area・MaxPrice は同時に指定されても先に設定されたもの1つだけが使われます（Keyword > Area > MaxPrice）。
type SearchCriteria struct {
	Keyword  string // 民宿名または住所の部分一致
	Area     string // 住所の部分一致
	MaxPrice *int   // 1泊料金の上限（以下）
	Order    string // OrderCreatedAtDesc（デフォルト）または OrderPriceAsc
}

// HouseRepository は民宿の永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type HouseRepository interface {
	// FindByID は存在しない場合 ErrHouseNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.House, error)

	// FindNewest は登録日時の新しい順に最大 limit 件を返します。
	FindNewest(ctx context.Context, limit int) ([]entity.House, error)

	// Search は一般向けの民宿検索です。
	Search(ctx context.Context, c SearchCriteria, p pagination.Pageable) ([]entity.House, int64, error)

	// SearchByName は管理画面向けに民宿名の部分一致でID順に検索します。keyword が空なら全件です。
	SearchByName(ctx context.Context, keyword string, p pagination.Pageable) ([]entity.House, int64, error)

	Create(ctx context.Context, h *entity.House) error
	Update(ctx context.Context, h *entity.House) error

	// Delete は存在しない場合 ErrHouseNotFound、予約から参照されている場合 ErrHouseInUse を返します。
	Delete(ctx context.Context, id uint) error
}

// ImageStorage は民宿画像ファイルの保存先です。
type ImageStorage interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Delete(ctx context.Context, name string) error
}
