// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config は起動時に1回だけ読み込み、以降はイミュータブルとして扱います。
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	SMTP     SMTPConfig
	Storage  StorageConfig
	Limits   RateLimitConfig
}

// AppConfig はHTTPサーバーの基本設定です。
type AppConfig struct {
	Env                  string
	LogLevel             string
	HTTPAddr             string
	BaseURL              string        // 決済リダイレクト先・認証リンクの生成に使う絶対URL
	VerificationTokenTTL time.Duration // メール認証トークンの有効期間
}

// DatabaseConfig はDB接続設定です。
type DatabaseConfig struct {
	Driver        string // mysql / postgres / sqlite
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	InstanceName  string // Cloud SQL接続名（MySQLのみ）
	DSN           string // postgres / sqlite 用の接続文字列（指定時は優先）
	RunMigrations bool
}

// RedisConfig はRedis接続設定です。空のHostはRedisなしで動作することを意味します。
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	CacheTTL time.Duration
}

// JWTConfig はログイントークンの署名設定です。
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// StripeConfig は決済プロバイダーの設定です。
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	BaseURL       string // テスト用にAPIエンドポイントを差し替える場合のみ指定
	Timeout       time.Duration
}

// SMTPConfig は認証メール送信の設定です。
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// StorageConfig は民宿画像の保存先です。
type StorageConfig struct {
	Dir string
}

// RateLimitConfig はサインアップ・ログインのレート制限です（req/sec, burst）。
type RateLimitConfig struct {
	AuthRate  float64
	AuthBurst int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")
	v.SetDefault("VERIFICATION_TOKEN_TTL", "24h")

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("RUN_MIGRATIONS", false)

	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_CACHE_TTL", "5m")

	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("STRIPE_CURRENCY", "jpy")
	v.SetDefault("STRIPE_TIMEOUT", "10s")

	v.SetDefault("SMTP_PORT", 587)

	v.SetDefault("STORAGE_DIR", "storage")

	v.SetDefault("AUTH_RATE_LIMIT", 0.5)
	v.SetDefault("AUTH_RATE_BURST", 5)
}

// Load は環境変数からConfigを生成します。
// 値の形式が不正な場合（負の有効期間など）はエラーを返します。
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:                  v.GetString("APP_ENV"),
			LogLevel:             v.GetString("LOG_LEVEL"),
			HTTPAddr:             v.GetString("HTTP_ADDR"),
			BaseURL:              strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
			VerificationTokenTTL: v.GetDuration("VERIFICATION_TOKEN_TTL"),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(v.GetString("DB_DRIVER")),
			User:          v.GetString("DB_USER"),
			Password:      v.GetString("DB_PASSWORD"),
			Name:          v.GetString("DB_NAME"),
			Host:          v.GetString("DB_HOST"),
			Port:          v.GetString("DB_PORT"),
			InstanceName:  v.GetString("INSTANCE_CONNECTION_NAME"),
			DSN:           v.GetString("DATABASE_URL"),
			RunMigrations: v.GetBool("RUN_MIGRATIONS"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			CacheTTL: v.GetDuration("REDIS_CACHE_TTL"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetDuration("JWT_EXPIRATION"),
		},
		Stripe: StripeConfig{
			SecretKey:     v.GetString("STRIPE_API_KEY"),
			WebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
			Currency:      strings.ToLower(v.GetString("STRIPE_CURRENCY")),
			BaseURL:       v.GetString("STRIPE_BASE_URL"),
			Timeout:       v.GetDuration("STRIPE_TIMEOUT"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		Storage: StorageConfig{
			Dir: v.GetString("STORAGE_DIR"),
		},
		Limits: RateLimitConfig{
			AuthRate:  v.GetFloat64("AUTH_RATE_LIMIT"),
			AuthBurst: v.GetInt("AUTH_RATE_BURST"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.App.VerificationTokenTTL <= 0 {
		return fmt.Errorf("VERIFICATION_TOKEN_TTL must be positive")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive")
	}
	if c.App.BaseURL == "" {
		return fmt.Errorf("APP_BASE_URL must not be empty")
	}
	return nil
}

// MissingSecrets は本番運用で必須となる秘密情報のうち未設定のものを返します。
// 起動時の警告出力に使用します。
func (c *Config) MissingSecrets() []string {
	var missing []string
	if c.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Stripe.SecretKey == "" {
		missing = append(missing, "STRIPE_API_KEY")
	}
	if c.Stripe.WebhookSecret == "" {
		missing = append(missing, "STRIPE_WEBHOOK_SECRET")
	}
	return missing
}

// RedisEnabled はRedisのホストが設定されているかを返します。
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}
