// Package db はGORMによるデータベース接続・マイグレーション・トランザクション管理を提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lodging_backend/internal/platform/config"
)

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// Config はDB接続に必要な情報です。
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	InstanceName string
	DSN          string
}

// ConfigFrom はアプリケーション設定からDB設定を取り出します。
func ConfigFrom(c config.DatabaseConfig) Config {
	return Config{
		Driver:       c.Driver,
		User:         c.User,
		Password:     c.Password,
		Name:         c.Name,
		Host:         c.Host,
		Port:         c.Port,
		InstanceName: c.InstanceName,
		DSN:          c.DSN,
	}
}

// BuildDSN はMySQL用のDSNを生成します。
// InstanceName が設定されている場合はCloud SQLのUnixソケット接続を優先します。
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// buildPostgresDSN はDATABASE_URL 未指定時に個別の設定値からkey=value形式のDSNを組み立てます。
func buildPostgresDSN(cfg Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Tokyo",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

// Dialector はドライバー名に応じたGORMのDialectorを返します。
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		return gmysql.Open(BuildDSN(cfg)), nil
	case "postgres":
		return postgres.Open(buildPostgresDSN(cfg)), nil
	case "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "lodging.db"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// GormConfig はアプリケーション共通のGORM設定です。
// ドライバー固有の一意制約違反は gorm.ErrDuplicatedKey に変換されます。
func GormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// Opener はDSN（またはDialector）からDBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry はDBの起動待ちのため、timeout に達するまで一定間隔で接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %d attempts: %w", attempt, err)
		}
		slog.Warn("db connect failed, retrying", "attempt", attempt, "error", err)
		time.Sleep(retryInterval)
	}
}

// Open は設定に従ってDBへ接続します。接続できない場合は最大60秒再試行します。
func Open(cfg Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	opener := func(string) (*gorm.DB, error) {
		return gorm.Open(dialector, GormConfig())
	}
	db, err := ConnectWithRetry(cfg.Driver, connectTimeout, opener)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		// SQLiteは単一ライターのため接続を1本に絞る
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Join(errors.New("failed to get sql.DB"), err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}
