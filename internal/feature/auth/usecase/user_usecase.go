package usecase

import (
	"context"
	"errors"

	"lodging_backend/internal/feature/auth/domain/entity"
	"lodging_backend/internal/shared/pagination"
	"lodging_backend/internal/shared/validation"
)

// ProfileInput は会員情報編集の入力値です。
type ProfileInput struct {
	Name        string
	Furigana    string
	PostalCode  string
	Address     string
	PhoneNumber string
	Email       string
}

// userUsecase は会員情報の参照・編集と、管理者向けの会員一覧を実装します。
type userUsecase struct {
	users UserRepository
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{users: users}
}

// Get はユーザーを取得します。
func (u *userUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// UpdateProfile は会員情報を更新します。
// メールアドレスを変更し、変更先が他のユーザーで登録済みの場合は email のフィールドエラーを返します。
func (u *userUsecase) UpdateProfile(ctx context.Context, id uint, in ProfileInput) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != user.Email {
		other, err := u.users.FindByEmail(ctx, in.Email)
		switch {
		case err == nil && other.ID != user.ID:
			return nil, validation.FieldErrors{"email": MsgEmailAlreadyRegistered}
		case err != nil && !errors.Is(err, ErrUserNotFound):
			return nil, err
		}
	}

	user.Name = in.Name
	user.Furigana = in.Furigana
	user.PostalCode = in.PostalCode
	user.Address = in.Address
	user.PhoneNumber = in.PhoneNumber
	user.Email = in.Email

	if err := u.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, validation.FieldErrors{"email": MsgEmailAlreadyRegistered}
		}
		return nil, err
	}
	return user, nil
}

// Search は管理者向けに氏名・フリガナで会員を検索します。
func (u *userUsecase) Search(ctx context.Context, keyword string, p pagination.Pageable) (pagination.Page[entity.User], error) {
	p = p.Normalize()
	users, total, err := u.users.Search(ctx, keyword, p)
	if err != nil {
		return pagination.Page[entity.User]{}, err
	}
	return pagination.NewPage(users, p, total), nil
}
