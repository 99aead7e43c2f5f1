package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/shared/pagination"
)

func input() HouseInput {
	return HouseInput{
		Name: "SAMURAIの宿", Description: "古民家", Price: 8000, Capacity: 4,
		PostalCode: "073-0145", Address: "北海道砂川市", PhoneNumber: "012-345-678",
	}
}

func newTestUsecase(repo HouseRepository, images ImageStorage) *houseUsecase {
	uc := NewHouseUsecase(repo, images)
	uc.imageName = func(original string) string { return "generated-" + original }
	return uc
}

func TestHouseUsecase_Newest(t *testing.T) {
	repo := &mockHouseRepository{FindNewestFunc: func(_ context.Context, limit int) ([]entity.House, error) {
		assert.Equal(t, NewestLimit, limit)
		return []entity.House{{ID: 2}, {ID: 1}}, nil
	}}

	houses, err := NewHouseUsecase(repo, newMemoryImages()).Newest(context.Background())

	require.NoError(t, err)
	assert.Len(t, houses, 2)
}

func TestHouseUsecase_Search_DefaultsOrder(t *testing.T) {
	var got SearchCriteria
	repo := &mockHouseRepository{SearchFunc: func(_ context.Context, c SearchCriteria, p pagination.Pageable) ([]entity.House, int64, error) {
		got = c
		return []entity.House{{ID: 1}}, 1, nil
	}}

	page, err := NewHouseUsecase(repo, newMemoryImages()).Search(context.Background(), SearchCriteria{Keyword: "東京", Order: "unknown"}, pagination.Pageable{})

	require.NoError(t, err)
	assert.Equal(t, OrderCreatedAtDesc, got.Order)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestHouseUsecase_Create(t *testing.T) {
	t.Run("with image", func(t *testing.T) {
		images := newMemoryImages()
		var saved *entity.House
		repo := &mockHouseRepository{CreateFunc: func(_ context.Context, h *entity.House) error {
			h.ID = 5
			saved = h
			return nil
		}}

		h, err := newTestUsecase(repo, images).Create(context.Background(), input(),
			&ImageUpload{Filename: "photo.jpg", Body: strings.NewReader("jpeg-bytes")})

		require.NoError(t, err)
		assert.Equal(t, uint(5), h.ID)
		assert.Equal(t, "generated-photo.jpg", saved.ImageName)
		assert.Equal(t, "jpeg-bytes", images.saved["generated-photo.jpg"])
		assert.Equal(t, 8000, saved.Price)
	})

	t.Run("without image", func(t *testing.T) {
		images := newMemoryImages()
		h, err := newTestUsecase(&mockHouseRepository{}, images).Create(context.Background(), input(), nil)

		require.NoError(t, err)
		assert.Empty(t, h.ImageName)
		assert.Empty(t, images.saved)
	})

	t.Run("stored image is removed when the insert fails", func(t *testing.T) {
		images := newMemoryImages()
		repo := &mockHouseRepository{CreateFunc: func(context.Context, *entity.House) error { return errors.New("db down") }}

		_, err := newTestUsecase(repo, images).Create(context.Background(), input(),
			&ImageUpload{Filename: "photo.jpg", Body: strings.NewReader("x")})

		assert.Error(t, err)
		assert.Equal(t, []string{"generated-photo.jpg"}, images.deleted)
		assert.Empty(t, images.saved)
	})

	t.Run("image save failure", func(t *testing.T) {
		images := newMemoryImages()
		images.saveErr = errors.New("disk full")
		created := false
		repo := &mockHouseRepository{CreateFunc: func(context.Context, *entity.House) error { created = true; return nil }}

		_, err := newTestUsecase(repo, images).Create(context.Background(), input(),
			&ImageUpload{Filename: "photo.jpg", Body: strings.NewReader("x")})

		assert.Error(t, err)
		assert.False(t, created)
	})
}

func TestHouseUsecase_Update(t *testing.T) {
	existing := func() *entity.House { return &entity.House{ID: 3, Name: "旧", ImageName: "old.jpg", Price: 5000} }

	t.Run("keeps image when none uploaded", func(t *testing.T) {
		images := newMemoryImages()
		var updated *entity.House
		repo := &mockHouseRepository{
			FindByIDFunc: func(context.Context, uint) (*entity.House, error) { return existing(), nil },
			UpdateFunc:   func(_ context.Context, h *entity.House) error { updated = h; return nil },
		}

		_, err := newTestUsecase(repo, images).Update(context.Background(), 3, input(), nil)

		require.NoError(t, err)
		assert.Equal(t, "old.jpg", updated.ImageName)
		assert.Equal(t, "SAMURAIの宿", updated.Name)
		assert.Empty(t, images.deleted)
	})

	t.Run("replaces image and removes the previous file", func(t *testing.T) {
		images := newMemoryImages()
		var updated *entity.House
		repo := &mockHouseRepository{
			FindByIDFunc: func(context.Context, uint) (*entity.House, error) { return existing(), nil },
			UpdateFunc:   func(_ context.Context, h *entity.House) error { updated = h; return nil },
		}

		_, err := newTestUsecase(repo, images).Update(context.Background(), 3, input(),
			&ImageUpload{Filename: "new.png", Body: strings.NewReader("png")})

		require.NoError(t, err)
		assert.Equal(t, "generated-new.png", updated.ImageName)
		assert.Equal(t, []string{"old.jpg"}, images.deleted)
	})

	t.Run("unknown house", func(t *testing.T) {
		_, err := newTestUsecase(&mockHouseRepository{}, newMemoryImages()).Update(context.Background(), 99, input(), nil)

		assert.ErrorIs(t, err, ErrHouseNotFound)
	})
}

func TestHouseUsecase_Delete(t *testing.T) {
	t.Run("removes row and image", func(t *testing.T) {
		images := newMemoryImages()
		var deletedID uint
		repo := &mockHouseRepository{
			FindByIDFunc: func(context.Context, uint) (*entity.House, error) {
				return &entity.House{ID: 3, ImageName: "a.jpg"}, nil
			},
			DeleteFunc: func(_ context.Context, id uint) error { deletedID = id; return nil },
		}

		err := newTestUsecase(repo, images).Delete(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, uint(3), deletedID)
		assert.Equal(t, []string{"a.jpg"}, images.deleted)
	})

	t.Run("house with reservations keeps its image", func(t *testing.T) {
		images := newMemoryImages()
		repo := &mockHouseRepository{
			FindByIDFunc: func(context.Context, uint) (*entity.House, error) {
				return &entity.House{ID: 3, ImageName: "a.jpg"}, nil
			},
			DeleteFunc: func(context.Context, uint) error { return ErrHouseInUse },
		}

		err := newTestUsecase(repo, images).Delete(context.Background(), 3)

		assert.ErrorIs(t, err, ErrHouseInUse)
		assert.Empty(t, images.deleted)
	})
}
