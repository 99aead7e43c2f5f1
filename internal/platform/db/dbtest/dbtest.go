// Package dbtest はテスト用のインメモリSQLiteデータベースを提供します。
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lodging_backend/internal/platform/db"
)

var seq atomic.Int64

// Open はテストごとに独立したインメモリSQLiteを開き、全テーブルのマイグレーションとロール投入を行います。
// 共有キャッシュの名前付きDBを使うため、トランザクション中でも同じデータが見えます。
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	gdb, err := gorm.Open(sqlite.Open(dsn), db.GormConfig())
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb), "failed to migrate tables")
	return gdb
}
