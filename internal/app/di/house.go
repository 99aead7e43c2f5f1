package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	houseadapters "lodging_backend/internal/feature/house/adapters"
	houseusecase "lodging_backend/internal/feature/house/usecase"
	"lodging_backend/internal/platform/cache"
)

// NewHouseRepository は民宿リポジトリを生成します。
// Redisが使える場合はキャッシュでラップし、使えない場合はDBを直接参照します。
func NewHouseRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) houseusecase.HouseRepository {
	repo := houseadapters.NewHouseMySQL(db)
	if rdb != nil {
		return cache.NewCachingHouseRepository(rdb, ttl, repo, "houses")
	}
	return repo
}
