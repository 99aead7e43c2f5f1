// Package adapters はhouseフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/feature/house/usecase"
	platformdb "lodging_backend/internal/platform/db"
	"lodging_backend/internal/shared/pagination"
)

// houseMySQL はHouseRepositoryインターフェースのGORM実装です。
type houseMySQL struct {
	db *gorm.DB
}

var _ usecase.HouseRepository = (*houseMySQL)(nil)

// NewHouseMySQL は指定されたgorm.DB接続でhouseMySQLの新しいインスタンスを生成します。
func NewHouseMySQL(db *gorm.DB) *houseMySQL {
	return &houseMySQL{db: db}
}

func (r *houseMySQL) FindByID(ctx context.Context, id uint) (*entity.House, error) {
	var h entity.House
	if err := platformdb.Conn(ctx, r.db).First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrHouseNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *houseMySQL) FindNewest(ctx context.Context, limit int) ([]entity.House, error) {
	var houses []entity.House
	err := platformdb.Conn(ctx, r.db).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&houses).Error
	return houses, err
}

// Search は条件の優先順位（キーワード > エリア > 料金上限）に従って1つの条件で絞り込みます。
func (r *houseMySQL) Search(ctx context.Context, c usecase.SearchCriteria, p pagination.Pageable) ([]entity.House, int64, error) {
	q := platformdb.Conn(ctx, r.db).Model(&entity.House{})
	switch {
	case c.Keyword != "":
		like := "%" + c.Keyword + "%"
		q = q.Where("name LIKE ? OR address LIKE ?", like, like)
	case c.Area != "":
		q = q.Where("address LIKE ?", "%"+c.Area+"%")
	case c.MaxPrice != nil:
		q = q.Where("price <= ?", *c.MaxPrice)
	}

	if c.Order == usecase.OrderPriceAsc {
		q = q.Order("price ASC").Order("id ASC")
	} else {
		q = q.Order("created_at DESC").Order("id DESC")
	}
	return r.page(q, p)
}

func (r *houseMySQL) SearchByName(ctx context.Context, keyword string, p pagination.Pageable) ([]entity.House, int64, error) {
	q := platformdb.Conn(ctx, r.db).Model(&entity.House{})
	if keyword != "" {
		q = q.Where("name LIKE ?", "%"+keyword+"%")
	}
	return r.page(q.Order("id ASC"), p)
}

func (r *houseMySQL) Create(ctx context.Context, h *entity.House) error {
	if h == nil {
		return errors.New("house is nil")
	}
	return platformdb.Conn(ctx, r.db).Create(h).Error
}

// Update は画像名を含む全項目を保存します。
func (r *houseMySQL) Update(ctx context.Context, h *entity.House) error {
	return platformdb.Conn(ctx, r.db).Model(&entity.House{}).Where("id = ?", h.ID).Updates(map[string]any{
		"name":         h.Name,
		"image_name":   h.ImageName,
		"description":  h.Description,
		"price":        h.Price,
		"capacity":     h.Capacity,
		"postal_code":  h.PostalCode,
		"address":      h.Address,
		"phone_number": h.PhoneNumber,
	}).Error
}

func (r *houseMySQL) Delete(ctx context.Context, id uint) error {
	res := platformdb.Conn(ctx, r.db).Delete(&entity.House{}, id)
	if res.Error != nil {
		if platformdb.IsForeignKeyViolation(res.Error) {
			return usecase.ErrHouseInUse
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrHouseNotFound
	}
	return nil
}

func (r *houseMySQL) page(q *gorm.DB, p pagination.Pageable) ([]entity.House, int64, error) {
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var houses []entity.House
	if err := q.Offset(p.Offset()).Limit(p.Limit()).Find(&houses).Error; err != nil {
		return nil, 0, err
	}
	return houses, total, nil
}
