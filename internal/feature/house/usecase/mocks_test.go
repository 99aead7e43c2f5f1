package usecase

import (
	"context"
	"io"

	"lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/shared/pagination"
)

type mockHouseRepository struct {
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.House, error)
	FindNewestFunc   func(ctx context.Context, limit int) ([]entity.House, error)
	SearchFunc       func(ctx context.Context, c SearchCriteria, p pagination.Pageable) ([]entity.House, int64, error)
	SearchByNameFunc func(ctx context.Context, keyword string, p pagination.Pageable) ([]entity.House, int64, error)
	CreateFunc       func(ctx context.Context, h *entity.House) error
	UpdateFunc       func(ctx context.Context, h *entity.House) error
	DeleteFunc       func(ctx context.Context, id uint) error
}

func (m *mockHouseRepository) FindByID(ctx context.Context, id uint) (*entity.House, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrHouseNotFound
}

func (m *mockHouseRepository) FindNewest(ctx context.Context, limit int) ([]entity.House, error) {
	if m.FindNewestFunc != nil {
		return m.FindNewestFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockHouseRepository) Search(ctx context.Context, c SearchCriteria, p pagination.Pageable) ([]entity.House, int64, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, c, p)
	}
	return nil, 0, nil
}

func (m *mockHouseRepository) SearchByName(ctx context.Context, keyword string, p pagination.Pageable) ([]entity.House, int64, error) {
	if m.SearchByNameFunc != nil {
		return m.SearchByNameFunc(ctx, keyword, p)
	}
	return nil, 0, nil
}

func (m *mockHouseRepository) Create(ctx context.Context, h *entity.House) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, h)
	}
	h.ID = 1
	return nil
}

func (m *mockHouseRepository) Update(ctx context.Context, h *entity.House) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, h)
	}
	return nil
}

func (m *mockHouseRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// memoryImages records saved and deleted image names.
type memoryImages struct {
	saved   map[string]string
	deleted []string
	saveErr error
}

func newMemoryImages() *memoryImages {
	return &memoryImages{saved: map[string]string{}}
}

func (m *memoryImages) Save(_ context.Context, name string, r io.Reader) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.saved[name] = string(b)
	return nil
}

func (m *memoryImages) Delete(_ context.Context, name string) error {
	m.deleted = append(m.deleted, name)
	delete(m.saved, name)
	return nil
}
