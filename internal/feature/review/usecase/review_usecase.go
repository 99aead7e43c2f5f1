package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"lodging_backend/internal/feature/review/domain/entity"
	"lodging_backend/internal/shared/pagination"
	"lodging_backend/internal/shared/validation"
)

// LatestLimit は民宿詳細に表示するレビューの件数です。
const LatestLimit = 6

// ReviewInput はレビュー投稿・編集フォームの入力値です。
type ReviewInput struct {
	Score   int
	Content string
}

// Validate はスコアの範囲とコメントの長さを検証します。
func (in ReviewInput) Validate() error {
	fe := validation.FieldErrors{}
	if in.Score < entity.MinScore || in.Score > entity.MaxScore {
		fe.Add("score", MsgScoreRange)
	}
	switch {
	case strings.TrimSpace(in.Content) == "":
		fe.Add("content", MsgContentBlank)
	case utf8.RuneCountInString(in.Content) > entity.MaxContentLength:
		fe.Add("content", MsgContentTooLong)
	}
	return fe.Err()
}

type reviewUsecase struct {
	reviews ReviewRepository
	houses  HouseReader
}

// NewReviewUsecase はreviewUsecaseの新しいインスタンスを生成します。
func NewReviewUsecase(reviews ReviewRepository, houses HouseReader) *reviewUsecase {
	return &reviewUsecase{reviews: reviews, houses: houses}
}

// ListByHouse は民宿のレビュー一覧を返します。
func (u *reviewUsecase) ListByHouse(ctx context.Context, houseID uint, p pagination.Pageable) (pagination.Page[entity.Review], error) {
	if _, err := u.houses.FindByID(ctx, houseID); err != nil {
		return pagination.Page[entity.Review]{}, err
	}
	p = p.Normalize()
	reviews, total, err := u.reviews.ListByHouse(ctx, houseID, p)
	if err != nil {
		return pagination.Page[entity.Review]{}, err
	}
	return pagination.NewPage(reviews, p, total), nil
}

// Latest は民宿詳細用の新しいレビューを返します。
func (u *reviewUsecase) Latest(ctx context.Context, houseID uint) ([]entity.Review, error) {
	return u.reviews.LatestByHouse(ctx, houseID, LatestLimit)
}

// Count は民宿のレビュー総数を返します。
func (u *reviewUsecase) Count(ctx context.Context, houseID uint) (int64, error) {
	return u.reviews.CountByHouse(ctx, houseID)
}

// HasUserReviewed はユーザーがその民宿をレビュー済みかを返します。
func (u *reviewUsecase) HasUserReviewed(ctx context.Context, houseID, userID uint) (bool, error) {
	_, err := u.reviews.FindByHouseAndUser(ctx, houseID, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrReviewNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Get は民宿に属するレビューを取得します。
func (u *reviewUsecase) Get(ctx context.Context, houseID, reviewID uint) (*entity.Review, error) {
	r, err := u.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if r.HouseID != houseID {
		return nil, ErrReviewNotFound
	}
	return r, nil
}

// Create はレビューを投稿します。1ユーザーにつき1民宿1件までです。
func (u *reviewUsecase) Create(ctx context.Context, houseID, userID uint, in ReviewInput) (*entity.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := u.houses.FindByID(ctx, houseID); err != nil {
		return nil, err
	}
	reviewed, err := u.HasUserReviewed(ctx, houseID, userID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrAlreadyReviewed
	}

	r := &entity.Review{HouseID: houseID, UserID: userID, Score: in.Score, Content: in.Content}
	if err := u.reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	slog.Info("review created", "review_id", r.ID, "house_id", houseID, "user_id", userID)
	return r, nil
}

// Update は投稿者本人のレビューを編集します。
func (u *reviewUsecase) Update(ctx context.Context, houseID, reviewID, userID uint, in ReviewInput) (*entity.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	r, err := u.owned(ctx, houseID, reviewID, userID)
	if err != nil {
		return nil, err
	}
	r.Score = in.Score
	r.Content = in.Content
	if err := u.reviews.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete は投稿者本人のレビューを削除します。
func (u *reviewUsecase) Delete(ctx context.Context, houseID, reviewID, userID uint) error {
	if _, err := u.owned(ctx, houseID, reviewID, userID); err != nil {
		return err
	}
	if err := u.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	slog.Info("review deleted", "review_id", reviewID, "user_id", userID)
	return nil
}

func (u *reviewUsecase) owned(ctx context.Context, houseID, reviewID, userID uint) (*entity.Review, error) {
	r, err := u.Get(ctx, houseID, reviewID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, ErrForbidden
	}
	return r, nil
}
