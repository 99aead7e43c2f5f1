// Package pagination はページ番号・ページサイズによる一覧取得の共通型を提供します。
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultSize は一覧のデフォルト件数です。
	DefaultSize = 10
	// MaxSize は1ページで取得できる最大件数です。
	MaxSize = 100
)

// Pageable は0始まりのページ番号とページサイズです。
type Pageable struct {
	Page int
	Size int
}

// Normalize は不正な値をデフォルトに丸めた Pageable を返します。
func (p Pageable) Normalize() Pageable {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset はSQLのOFFSET値です。
func (p Pageable) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}

// Limit はSQLのLIMIT値です。
func (p Pageable) Limit() int {
	return p.Normalize().Size
}

// FromQuery はクエリパラメータ page / size を読み取ります。数値でない値はデフォルト扱いです。
func FromQuery(c *gin.Context) Pageable {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	return Pageable{Page: page, Size: size}.Normalize()
}

// Page は一覧の1ページ分の結果です。
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage は取得結果と総件数から Page を組み立てます。
func NewPage[T any](content []T, p Pageable, total int64) Page[T] {
	p = p.Normalize()
	if content == nil {
		content = []T{}
	}
	pages := int((total + int64(p.Size) - 1) / int64(p.Size))
	return Page[T]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// Map はページ内の要素を変換します。ページ情報はそのまま引き継ぎます。
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, v := range p.Content {
		out = append(out, fn(v))
	}
	return Page[U]{
		Content:       out,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}
