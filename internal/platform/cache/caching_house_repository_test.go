package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/feature/house/usecase"
	"lodging_backend/internal/shared/pagination"
)

// mockHouseRepository はテスト用のHouseRepositoryモック実装です。
type mockHouseRepository struct {
	findByIDFn   func(ctx context.Context, id uint) (*entity.House, error)
	findNewestFn func(ctx context.Context, limit int) ([]entity.House, error)
	updateFn     func(ctx context.Context, h *entity.House) error
	deleteFn     func(ctx context.Context, id uint) error

	findByIDCalls   int
	findNewestCalls int
}

func (m *mockHouseRepository) FindByID(ctx context.Context, id uint) (*entity.House, error) {
	m.findByIDCalls++
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &entity.House{ID: id, Name: "宿"}, nil
}

func (m *mockHouseRepository) FindNewest(ctx context.Context, limit int) ([]entity.House, error) {
	m.findNewestCalls++
	if m.findNewestFn != nil {
		return m.findNewestFn(ctx, limit)
	}
	return []entity.House{{ID: 2}, {ID: 1}}, nil
}

func (m *mockHouseRepository) Search(context.Context, usecase.SearchCriteria, pagination.Pageable) ([]entity.House, int64, error) {
	return nil, 0, nil
}

func (m *mockHouseRepository) SearchByName(context.Context, string, pagination.Pageable) ([]entity.House, int64, error) {
	return nil, 0, nil
}

func (m *mockHouseRepository) Create(_ context.Context, h *entity.House) error {
	h.ID = 10
	return nil
}

func (m *mockHouseRepository) Update(ctx context.Context, h *entity.House) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, h)
	}
	return nil
}

func (m *mockHouseRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// TestNewCachingHouseRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingHouseRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "houses"},
		{"negative ttl uses default", -time.Minute, "", 5 * time.Minute, "houses"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingHouseRepository(nil, tt.ttl, &mockHouseRepository{}, tt.namespace)

			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

// TestCachingHouseRepository_NilRedis はRedisがnilの場合に常に内部リポジトリを呼び出すことを検証します。
func TestCachingHouseRepository_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockHouseRepository{}
	repo := NewCachingHouseRepository(nil, time.Minute, inner, "")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		_, err = repo.FindNewest(ctx, 10)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Update(ctx, &entity.House{ID: 1}))

	assert.Equal(t, 2, inner.findByIDCalls)
	assert.Equal(t, 2, inner.findNewestCalls)
}

// TestCachingHouseRepository_FindByID_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingHouseRepository_FindByID_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached, _ := json.Marshal(entity.House{ID: 3, Name: "キャッシュの宿"})
	mock.ExpectGet("houses:id:3").SetVal(string(cached))

	inner := &mockHouseRepository{}
	repo := NewCachingHouseRepository(rdb, 5*time.Minute, inner, "houses")

	h, err := repo.FindByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "キャッシュの宿", h.Name)
	assert.Zero(t, inner.findByIDCalls, "inner repository should not be called on cache hit")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingHouseRepository_FindByID_CacheMiss はキャッシュミス時にDBから取得してキャッシュに保存することを検証します。
func TestCachingHouseRepository_FindByID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	house := &entity.House{ID: 3, Name: "DBの宿"}
	houseJSON, _ := json.Marshal(house)
	mock.ExpectGet("houses:id:3").RedisNil()
	mock.ExpectSet("houses:id:3", houseJSON, 5*time.Minute).SetVal("OK")

	inner := &mockHouseRepository{findByIDFn: func(context.Context, uint) (*entity.House, error) { return house, nil }}
	repo := NewCachingHouseRepository(rdb, 5*time.Minute, inner, "houses")

	h, err := repo.FindByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "DBの宿", h.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingHouseRepository_FindByID_NotFound は見つからない結果をキャッシュしないことを検証します。
func TestCachingHouseRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("houses:id:9").RedisNil()

	inner := &mockHouseRepository{findByIDFn: func(context.Context, uint) (*entity.House, error) {
		return nil, usecase.ErrHouseNotFound
	}}
	repo := NewCachingHouseRepository(rdb, 5*time.Minute, inner, "houses")

	_, err := repo.FindByID(context.Background(), 9)

	assert.ErrorIs(t, err, usecase.ErrHouseNotFound)
	assert.NoError(t, mock.ExpectationsWereMet(), "no SET must be issued")
}

// TestCachingHouseRepository_FindNewest_CorruptedCache は破損したキャッシュを削除してDBにフォールバックすることを検証します。
func TestCachingHouseRepository_FindNewest_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	houses := []entity.House{{ID: 2}, {ID: 1}}
	housesJSON, _ := json.Marshal(houses)
	mock.ExpectGet("houses:newest:10").SetVal("invalid json")
	mock.ExpectDel("houses:newest:10").SetVal(1)
	mock.ExpectSet("houses:newest:10", housesJSON, 5*time.Minute).SetVal("OK")

	inner := &mockHouseRepository{findNewestFn: func(context.Context, int) ([]entity.House, error) { return houses, nil }}
	repo := NewCachingHouseRepository(rdb, 5*time.Minute, inner, "houses")

	got, err := repo.FindNewest(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingHouseRepository_Update_Invalidation は更新後に詳細と新着一覧のキャッシュを削除することを検証します。
func TestCachingHouseRepository_Update_Invalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("houses:id:3").SetVal(1)
	mock.ExpectScan(0, "houses:newest:*", 200).SetVal([]string{"houses:newest:10"}, 0)
	mock.ExpectDel("houses:newest:10").SetVal(1)

	repo := NewCachingHouseRepository(rdb, 5*time.Minute, &mockHouseRepository{}, "houses")

	require.NoError(t, repo.Update(context.Background(), &entity.House{ID: 3}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingHouseRepository_Delete_InnerError は内部リポジトリのエラー時にキャッシュを操作しないことを検証します。
func TestCachingHouseRepository_Delete_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockHouseRepository{deleteFn: func(context.Context, uint) error { return usecase.ErrHouseInUse }}
	repo := NewCachingHouseRepository(rdb, 5*time.Minute, inner, "houses")

	err := repo.Delete(context.Background(), 3)

	assert.ErrorIs(t, err, usecase.ErrHouseInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingHouseRepository_Miniredis は実際のRedisプロトコルでキャッシュと無効化が連携することを検証します。
func TestCachingHouseRepository_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	inner := &mockHouseRepository{}
	repo := NewCachingHouseRepository(rdb, time.Minute, inner, "houses")
	ctx := context.Background()

	_, err := repo.FindNewest(ctx, 10)
	require.NoError(t, err)
	_, err = repo.FindNewest(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.findNewestCalls, "second call should be served from cache")
	assert.True(t, mr.Exists("houses:newest:10"))

	h := &entity.House{Name: "新しい宿"}
	require.NoError(t, repo.Create(ctx, h))
	assert.False(t, mr.Exists("houses:newest:10"), "create must invalidate newest lists")

	_, err = repo.FindNewest(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.findNewestCalls)

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("houses:newest:10"), "entries expire after the ttl")
}

// TestCachingHouseRepository_UpdateError は更新失敗時にエラーが伝播されることを検証します。
func TestCachingHouseRepository_UpdateError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("database error")
	repo := NewCachingHouseRepository(nil, time.Minute, &mockHouseRepository{
		updateFn: func(context.Context, *entity.House) error { return dbErr },
	}, "")

	assert.ErrorIs(t, repo.Update(context.Background(), &entity.House{ID: 1}), dbErr)
}

func TestSafe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a_b_c", safe("a b:c"))
	assert.Equal(t, "houses", safe("houses"))
}
