package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor はユースケース単位のトランザクションを提供します。
// トランザクション中のリポジトリは Conn(ctx, db) を通じて同じ *gorm.DB を使います。
type Transactor struct {
	db *gorm.DB
}

// NewTransactor は Transactor を生成します。
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTransaction は fn をトランザクション内で実行します。fn がエラーを返すとロールバックします。
// 既にトランザクション中の ctx が渡された場合は、そのトランザクションに参加します。
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Conn は ctx にトランザクションがあればそれを、無ければ fallback を ctx 付きで返します。
func Conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}
