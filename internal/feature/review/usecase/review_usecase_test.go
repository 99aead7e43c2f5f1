package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	houseentity "lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/feature/review/domain/entity"
	"lodging_backend/internal/shared/pagination"
	"lodging_backend/internal/shared/validation"
)

// memoryReviews is an in-memory ReviewRepository.
type memoryReviews struct {
	rows   map[uint]*entity.Review
	nextID uint
}

func newMemoryReviews(rows ...entity.Review) *memoryReviews {
	m := &memoryReviews{rows: map[uint]*entity.Review{}}
	for i := range rows {
		r := rows[i]
		m.rows[r.ID] = &r
		if r.ID > m.nextID {
			m.nextID = r.ID
		}
	}
	return m
}

func (m *memoryReviews) Create(_ context.Context, r *entity.Review) error {
	for _, row := range m.rows {
		if row.HouseID == r.HouseID && row.UserID == r.UserID {
			return ErrAlreadyReviewed
		}
	}
	m.nextID++
	r.ID = m.nextID
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memoryReviews) Update(_ context.Context, r *entity.Review) error {
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memoryReviews) Delete(_ context.Context, id uint) error {
	if _, ok := m.rows[id]; !ok {
		return ErrReviewNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryReviews) FindByID(_ context.Context, id uint) (*entity.Review, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memoryReviews) FindByHouseAndUser(_ context.Context, houseID, userID uint) (*entity.Review, error) {
	for _, r := range m.rows {
		if r.HouseID == houseID && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrReviewNotFound
}

func (m *memoryReviews) ListByHouse(_ context.Context, houseID uint, _ pagination.Pageable) ([]entity.Review, int64, error) {
	var out []entity.Review
	for _, r := range m.rows {
		if r.HouseID == houseID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memoryReviews) LatestByHouse(ctx context.Context, houseID uint, limit int) ([]entity.Review, error) {
	out, _, err := m.ListByHouse(ctx, houseID, pagination.Pageable{})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (m *memoryReviews) CountByHouse(ctx context.Context, houseID uint) (int64, error) {
	_, n, err := m.ListByHouse(ctx, houseID, pagination.Pageable{})
	return n, err
}

// houseSet is a HouseReader backed by a set of IDs.
type houseSet map[uint]bool

func (h houseSet) FindByID(_ context.Context, id uint) (*houseentity.House, error) {
	if !h[id] {
		return nil, ErrHouseNotFound
	}
	return &houseentity.House{ID: id}, nil
}

func TestReviewInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		in     ReviewInput
		fields map[string]string
	}{
		{"valid", ReviewInput{Score: 3, Content: "良い宿"}, nil},
		{"score too low", ReviewInput{Score: 0, Content: "x"}, map[string]string{"score": MsgScoreRange}},
		{"score too high", ReviewInput{Score: 6, Content: "x"}, map[string]string{"score": MsgScoreRange}},
		{"blank content", ReviewInput{Score: 5, Content: "  "}, map[string]string{"content": MsgContentBlank}},
		{"300 characters is allowed", ReviewInput{Score: 5, Content: strings.Repeat("あ", 300)}, nil},
		{"301 characters", ReviewInput{Score: 5, Content: strings.Repeat("あ", 301)}, map[string]string{"content": MsgContentTooLong}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var fe validation.FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, validation.FieldErrors(tt.fields), fe)
		})
	}
}

func TestReviewUsecase_Create(t *testing.T) {
	houses := houseSet{1: true}

	t.Run("first review", func(t *testing.T) {
		repo := newMemoryReviews()
		r, err := NewReviewUsecase(repo, houses).Create(context.Background(), 1, 10, ReviewInput{Score: 4, Content: "快適"})

		require.NoError(t, err)
		assert.Equal(t, uint(1), r.HouseID)
		assert.Equal(t, uint(10), r.UserID)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("second review by the same user is rejected", func(t *testing.T) {
		repo := newMemoryReviews(entity.Review{ID: 1, HouseID: 1, UserID: 10, Score: 3, Content: "a"})

		_, err := NewReviewUsecase(repo, houses).Create(context.Background(), 1, 10, ReviewInput{Score: 4, Content: "b"})

		assert.ErrorIs(t, err, ErrAlreadyReviewed)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("unknown house", func(t *testing.T) {
		_, err := NewReviewUsecase(newMemoryReviews(), houses).Create(context.Background(), 2, 10, ReviewInput{Score: 4, Content: "b"})

		assert.ErrorIs(t, err, ErrHouseNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := NewReviewUsecase(newMemoryReviews(), houses).Create(context.Background(), 1, 10, ReviewInput{Score: 9, Content: "b"})

		var fe validation.FieldErrors
		assert.ErrorAs(t, err, &fe)
	})
}

func TestReviewUsecase_UpdateDelete(t *testing.T) {
	houses := houseSet{1: true, 2: true}
	seed := entity.Review{ID: 5, HouseID: 1, UserID: 10, Score: 2, Content: "普通"}

	t.Run("author updates", func(t *testing.T) {
		repo := newMemoryReviews(seed)
		r, err := NewReviewUsecase(repo, houses).Update(context.Background(), 1, 5, 10, ReviewInput{Score: 5, Content: "最高"})

		require.NoError(t, err)
		assert.Equal(t, 5, r.Score)
		assert.Equal(t, "最高", repo.rows[5].Content)
	})

	t.Run("other user cannot update or delete", func(t *testing.T) {
		repo := newMemoryReviews(seed)
		uc := NewReviewUsecase(repo, houses)

		_, err := uc.Update(context.Background(), 1, 5, 11, ReviewInput{Score: 5, Content: "改ざん"})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.ErrorIs(t, uc.Delete(context.Background(), 1, 5, 11), ErrForbidden)
		assert.Equal(t, "普通", repo.rows[5].Content)
	})

	t.Run("review of another house is not found", func(t *testing.T) {
		_, err := NewReviewUsecase(newMemoryReviews(seed), houses).Update(context.Background(), 2, 5, 10, ReviewInput{Score: 5, Content: "x"})

		assert.ErrorIs(t, err, ErrReviewNotFound)
	})

	t.Run("author deletes", func(t *testing.T) {
		repo := newMemoryReviews(seed)

		require.NoError(t, NewReviewUsecase(repo, houses).Delete(context.Background(), 1, 5, 10))
		assert.Empty(t, repo.rows)
	})
}

func TestReviewUsecase_Queries(t *testing.T) {
	repo := newMemoryReviews(
		entity.Review{ID: 1, HouseID: 1, UserID: 10},
		entity.Review{ID: 2, HouseID: 1, UserID: 11},
		entity.Review{ID: 3, HouseID: 2, UserID: 10},
	)
	uc := NewReviewUsecase(repo, houseSet{1: true, 2: true})
	ctx := context.Background()

	reviewed, err := uc.HasUserReviewed(ctx, 1, 11)
	require.NoError(t, err)
	assert.True(t, reviewed)

	reviewed, err = uc.HasUserReviewed(ctx, 2, 11)
	require.NoError(t, err)
	assert.False(t, reviewed)

	n, err := uc.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	page, err := uc.ListByHouse(ctx, 1, pagination.Pageable{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)

	_, err = uc.ListByHouse(ctx, 3, pagination.Pageable{})
	assert.ErrorIs(t, err, ErrHouseNotFound)
}
